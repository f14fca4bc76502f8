package handler

import (
	"encoding/json"
	"net/http"

	"eliteshop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// UploadHandler handles product image upload HTTP requests.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload/product-image. Expects a multipart
// form with the image under the "image" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided", h.logger)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected", h.logger)
		return
	}

	filename, err := h.service.SaveProductImage(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":   "Image uploaded successfully",
		"image_url": "/api/uploads/products/" + filename,
		"filename":  filename,
	})
}

// ServeImage handles GET /api/uploads/products/{filename}.
func (h *UploadHandler) ServeImage(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	path, err := h.service.ImagePath(filename)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	http.ServeFile(w, r, path)
}

// DeleteImage handles DELETE /api/upload/delete-image.
func (h *UploadHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Filename string `json:"filename"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
		writeError(w, http.StatusBadRequest, "Filename required", h.logger)
		return
	}

	if err := h.service.DeleteProductImage(r.Context(), req.Filename); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Image deleted successfully"})
}
