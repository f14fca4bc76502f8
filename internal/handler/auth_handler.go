package handler

import (
	"encoding/json"
	"net/http"

	"eliteshop/internal/model"
	"eliteshop/internal/service"
	"eliteshop/internal/session"

	"github.com/rs/zerolog"
)

// AuthHandler handles admin authentication HTTP requests.
type AuthHandler struct {
	service  service.AuthService
	sessions session.Store
	logger   zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, sessions session.Store, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		sessions: sessions,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /api/admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Username and password required", h.logger)
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password required", h.logger)
		return
	}

	admin, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	state, err := h.sessions.Load(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	state.AdminID = admin.ID
	if err := h.sessions.Save(w, r, state); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"admin":   admin,
	})
}

// Logout handles POST /api/admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Load(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	state.AdminID = 0
	if err := h.sessions.Save(w, r, state); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// CheckAuth handles GET /api/admin/check-auth. Always answers 200; the body
// says whether the session belongs to a live admin. A session pointing at a
// deleted or deactivated admin is cleared on the way out.
func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessions.Load(r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if state.AdminID == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}

	admin, err := h.service.VerifyAdmin(r.Context(), state.AdminID)
	if err != nil {
		state.AdminID = 0
		if serr := h.sessions.Save(w, r, state); serr != nil {
			h.logger.Error().Err(serr).Msg("failed to clear stale admin session")
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"admin":         admin,
	})
}

// CreateDefault handles POST /api/admin/create-default, the one-time
// bootstrap of the initial admin account.
func (h *AuthHandler) CreateDefault(w http.ResponseWriter, r *http.Request) {
	admin, err := h.service.CreateDefaultAdmin(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	h.logger.Info().Str("username", admin.Username).Msg("default admin created")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Default admin created successfully",
		"credentials": map[string]string{
			"username": "admin",
			"password": "admin123",
		},
	})
}
