package service

import (
	"context"
	"io"

	"eliteshop/internal/model"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves active products for the storefront.
	List(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error)

	// GetActiveByID retrieves a single active product for the storefront.
	GetActiveByID(ctx context.Context, id int64) (*model.Product, error)

	// AdminList retrieves all products, including soft-deleted ones.
	AdminList(ctx context.Context, filter model.ProductFilter) (*model.ProductListResponse, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// Update applies a partial field merge to a product.
	Update(ctx context.Context, id int64, req *model.UpdateProductRequest) (*model.Product, error)

	// SoftDelete hides a product from the storefront without removing it.
	SoftDelete(ctx context.Context, id int64) error

	// BulkUpdate applies a field map to a set of products; unknown fields
	// are ignored. Returns the number of products touched.
	BulkUpdate(ctx context.Context, req *model.BulkUpdateRequest) (int64, error)

	// BulkDelete hard-deletes a set of products. Returns the number removed.
	BulkDelete(ctx context.Context, req *model.BulkDeleteRequest) (int64, error)

	// Categories retrieves the distinct non-empty categories; activeOnly
	// restricts to the storefront view.
	Categories(ctx context.Context, activeOnly bool) ([]string, error)

	// Analytics summarises the catalogue for the admin dashboard.
	Analytics(ctx context.Context) (*model.ProductAnalytics, error)

	// LowStock retrieves products with stock at or below the threshold.
	LowStock(ctx context.Context, threshold int) ([]model.Product, error)

	// UpdateStock sets a product's stock quantity directly.
	UpdateStock(ctx context.Context, id int64, quantity int) (*model.Product, error)
}

// CartService defines operations on one session's cart.
type CartService interface {
	// Get retrieves the cart with per-item subtotals and the computed total.
	Get(ctx context.Context, sessionID string) (*model.CartResponse, error)

	// Add puts a product in the cart, merging into an existing line.
	Add(ctx context.Context, sessionID string, req *model.AddToCartRequest) error

	// Update sets a cart line's quantity; zero or less removes the line.
	Update(ctx context.Context, sessionID string, itemID int64, quantity int) error

	// Remove deletes one cart line.
	Remove(ctx context.Context, sessionID string, itemID int64) error

	// Clear empties the cart.
	Clear(ctx context.Context, sessionID string) error

	// Count returns the number of cart lines.
	Count(ctx context.Context, sessionID string) (int, error)
}

// OrderService defines checkout and order query operations.
type OrderService interface {
	// Checkout validates the session's cart against live stock, creates the
	// order with price snapshots, decrements stock and clears the cart as
	// one atomic transaction.
	Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.Order, error)

	// GetByNumber retrieves an order with its items by order number.
	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error)

	// ListByEmail retrieves a customer's orders, newest first.
	ListByEmail(ctx context.Context, email string, page, perPage int) (*model.OrderListResponse, error)

	// List retrieves all orders, optionally filtered by status, newest first.
	List(ctx context.Context, status string, page, perPage int) (*model.OrderListResponse, error)

	// UpdateStatus transitions an order to one of the known statuses.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error)

	// Stats summarises orders for the admin dashboard.
	Stats(ctx context.Context) (*model.OrderStats, error)
}

// AuthService defines admin authentication operations.
type AuthService interface {
	// Login verifies the credentials against the stored hash and stamps the
	// admin's last login.
	Login(ctx context.Context, username, password string) (*model.Admin, error)

	// VerifyAdmin checks that the admin behind a session still exists and
	// is active. Called on every guarded request, never cached.
	VerifyAdmin(ctx context.Context, adminID int64) (*model.Admin, error)

	// CreateDefaultAdmin bootstraps the single default admin account and
	// refuses when any admin already exists.
	CreateDefaultAdmin(ctx context.Context) (*model.Admin, error)
}

// UploadService defines product image storage operations.
type UploadService interface {
	// SaveProductImage validates, stores and resizes an uploaded image.
	// Returns the generated filename.
	SaveProductImage(ctx context.Context, originalName string, file io.Reader, size int64) (string, error)

	// DeleteProductImage removes a stored image by filename.
	DeleteProductImage(ctx context.Context, filename string) error

	// ImagePath resolves a stored image's filesystem path, rejecting
	// traversal attempts.
	ImagePath(filename string) (string, error)
}
