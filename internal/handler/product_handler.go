package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"eliteshop/internal/model"
	"eliteshop/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalogue HTTP requests, both storefront and admin.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

func filterFromQuery(r *http.Request) model.ProductFilter {
	q := r.URL.Query()
	return model.ProductFilter{
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Page:      queryInt(r, "page", 1),
		PerPage:   queryInt(r, "per_page", 0),
	}
}

// List handles GET /api/products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.List(r.Context(), filterFromQuery(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetByID handles GET /api/products/{id}.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	product, err := h.service.GetActiveByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Categories handles GET /api/products/categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context(), true)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// AdminList handles GET /api/admin/products, including inactive products.
func (h *ProductHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.AdminList(r.Context(), filterFromQuery(r))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Search handles GET /api/admin/products/search.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	filter.Search = r.URL.Query().Get("q")

	resp, err := h.service.AdminList(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// AdminCategories handles GET /api/admin/products/categories, spanning
// inactive products too.
func (h *ProductHandler) AdminCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context(), false)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

// Create handles POST /api/admin/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	var req model.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	product, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id}. Soft delete: the product
// disappears from the storefront but the row stays.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product ID", h.logger)
		return
	}

	if err := h.service.SoftDelete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Product deleted successfully"})
}

// BulkUpdate handles PUT /api/admin/products/bulk-update.
func (h *ProductHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.BulkUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	updated, err := h.service.BulkUpdate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Updated %d products successfully", updated),
	})
}

// BulkDelete handles DELETE /api/admin/products/bulk-delete.
func (h *ProductHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req model.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	deleted, err := h.service.BulkDelete(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Deleted %d products successfully", deleted),
	})
}

// Analytics handles GET /api/admin/products/analytics.
func (h *ProductHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.Analytics(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, analytics)
}

// LowStock handles GET /api/admin/inventory/low-stock.
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := queryInt(r, "threshold", 10)

	products, err := h.service.LowStock(r.Context(), threshold)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// UpdateStock handles PUT /api/admin/inventory/update-stock.
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID     *int64 `json:"product_id"`
		StockQuantity *int   `json:"stock_quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == nil || req.StockQuantity == nil {
		writeError(w, http.StatusBadRequest, "Product ID and stock quantity required", h.logger)
		return
	}

	product, err := h.service.UpdateStock(r.Context(), *req.ProductID, *req.StockQuantity)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Stock updated successfully",
		"product": product,
	})
}
