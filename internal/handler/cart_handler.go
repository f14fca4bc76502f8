package handler

import (
	"encoding/json"
	"net/http"

	"eliteshop/internal/model"
	"eliteshop/internal/service"
	"eliteshop/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests. Every operation is scoped to the
// cart identifier in the client's session, lazily created on first access.
type CartHandler struct {
	service  service.CartService
	sessions session.Store
	logger   zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, sessions session.Store, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service:  service,
		sessions: sessions,
		logger:   logger.With().Str("handler", "cart").Logger(),
	}
}

// cartID returns the session's cart identifier, creating and persisting one
// on first access.
func (h *CartHandler) cartID(w http.ResponseWriter, r *http.Request) (string, error) {
	state, err := h.sessions.Load(r)
	if err != nil {
		return "", err
	}

	if state.CartID == "" {
		state.CartID = uuid.NewString()
		if err := h.sessions.Save(w, r, state); err != nil {
			return "", err
		}
		h.logger.Debug().Str("cart_id", state.CartID).Msg("created cart session")
	}

	return state.CartID, nil
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cartID, err := h.cartID(w, r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	cart, err := h.service.Get(r.Context(), cartID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cartID, err := h.cartID(w, r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Add(r.Context(), cartID, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Item added to cart successfully"})
}

// Update handles PUT /api/cart/update/{itemID}.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart item ID", h.logger)
		return
	}

	var req model.UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Quantity is required", h.logger)
		return
	}

	cartID, err := h.cartID(w, r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Update(r.Context(), cartID, itemID, req.Quantity); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Cart updated successfully"})
}

// Remove handles DELETE /api/cart/remove/{itemID}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	itemID, err := idParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cart item ID", h.logger)
		return
	}

	cartID, err := h.cartID(w, r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Remove(r.Context(), cartID, itemID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Item removed from cart successfully"})
}

// Clear handles DELETE /api/cart/clear.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cartID, err := h.cartID(w, r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.Clear(r.Context(), cartID); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Cart cleared successfully"})
}

// Count handles GET /api/cart/count.
func (h *CartHandler) Count(w http.ResponseWriter, r *http.Request) {
	cartID, err := h.cartID(w, r)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	count, err := h.service.Count(r.Context(), cartID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
