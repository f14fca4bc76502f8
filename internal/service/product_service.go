package service

import (
	"context"
	"fmt"

	"eliteshop/internal/model"
	"eliteshop/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPerPage      = 12
	maxPerPage          = 100
	defaultLowStock     = 10
	defaultAdminPerPage = 20
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// normalizeFilter clamps pagination and defaults the sort.
func normalizeFilter(filter model.ProductFilter, perPageDefault int) model.ProductFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = perPageDefault
	}
	if filter.PerPage > maxPerPage {
		filter.PerPage = maxPerPage
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}
	if filter.SortOrder != "asc" {
		filter.SortOrder = "desc"
	}
	return filter
}

func pageCount(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// List retrieves active products for the storefront.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error) {
	return s.list(ctx, filter, true, defaultPerPage)
}

// AdminList retrieves all products, including soft-deleted ones.
func (s *productService) AdminList(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error) {
	return s.list(ctx, filter, false, defaultAdminPerPage)
}

func (s *productService) list(ctx context.Context, filter model.ProductFilter, activeOnly bool, perPageDefault int) (*model.ProductListResponse, error) {
	filter = normalizeFilter(filter, perPageDefault)

	products, total, err := s.productRepo.List(ctx, filter, activeOnly)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("total", total).
		Int("page", filter.Page).
		Msg("listed products")

	return &model.ProductListResponse{
		Products:    products,
		Total:       total,
		Pages:       pageCount(total, filter.PerPage),
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
	}, nil
}

// GetActiveByID retrieves a single active product for the storefront.
func (s *productService) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil || !product.IsActive {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create adds a new product to the catalogue.
func (s *productService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req.Name == "" || req.Price == nil {
		return nil, model.NewValidationError("Name and price are required")
	}

	if req.Price.IsNegative() {
		return nil, model.NewValidationError("Price cannot be negative")
	}

	if req.StockQuantity < 0 {
		return nil, model.NewValidationError("Stock quantity cannot be negative")
	}

	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Str("name", product.Name).Msg("product created")
	return product, nil
}

// Update applies a partial field merge to a product.
func (s *productService) Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, model.NewValidationError("Price cannot be negative")
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, model.NewValidationError("Stock quantity cannot be negative")
		}
		product.StockQuantity = *req.StockQuantity
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// SoftDelete hides a product from the storefront without removing it.
func (s *productService) SoftDelete(ctx context.Context, id int64) error {
	found, err := s.productRepo.SoftDelete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product soft-deleted")
	return nil
}

// BulkUpdate applies a field map to a set of products.
func (s *productService) BulkUpdate(ctx context.Context, req *model.BulkUpdateRequest) (int64, error) {
	if len(req.ProductIDs) == 0 {
		return 0, model.NewValidationError("No product IDs provided")
	}

	updated, err := s.productRepo.BulkUpdate(ctx, req.ProductIDs, req.Updates)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk-update products: %w", err)
	}

	s.logger.Info().Int64("updated", updated).Msg("bulk-updated products")
	return updated, nil
}

// BulkDelete hard-deletes a set of products.
func (s *productService) BulkDelete(ctx context.Context, req *model.BulkDeleteRequest) (int64, error) {
	if len(req.ProductIDs) == 0 {
		return 0, model.NewValidationError("No product IDs provided")
	}

	deleted, err := s.productRepo.BulkDelete(ctx, req.ProductIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk-delete products: %w", err)
	}

	s.logger.Info().Int64("deleted", deleted).Msg("bulk-deleted products")
	return deleted, nil
}

// Categories retrieves the distinct non-empty categories.
func (s *productService) Categories(ctx context.Context, activeOnly bool) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

// Analytics summarises the catalogue for the admin dashboard.
func (s *productService) Analytics(ctx context.Context) (*model.ProductAnalytics, error) {
	analytics, err := s.productRepo.Analytics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get product analytics: %w", err)
	}
	return analytics, nil
}

// LowStock retrieves products with stock at or below the threshold.
func (s *productService) LowStock(ctx context.Context, threshold int) ([]model.Product, error) {
	if threshold < 0 {
		threshold = defaultLowStock
	}

	products, err := s.productRepo.LowStock(ctx, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to get low-stock products: %w", err)
	}

	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// UpdateStock sets a product's stock quantity directly.
func (s *productService) UpdateStock(ctx context.Context, id int64, quantity int) (*model.Product, error) {
	if quantity < 0 {
		return nil, model.NewValidationError("Stock quantity cannot be negative")
	}

	found, err := s.productRepo.UpdateStock(ctx, id, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Int("stock_quantity", quantity).Msg("stock updated")
	return product, nil
}
