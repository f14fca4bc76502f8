package repository

import (
	"context"
	"time"

	"eliteshop/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products matching the filter along with the total row
	// count before pagination. When activeOnly is true, soft-deleted
	// products are excluded.
	List(ctx context.Context, filter model.ProductFilter, activeOnly bool) ([]model.Product, int, error)

	// GetByID retrieves a single product by its ID. Returns (nil, nil) when
	// the product does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetByIDTx retrieves a product within the provided transaction.
	GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error)

	// Create inserts a new product and fills in its ID and creation time.
	Create(ctx context.Context, product *model.Product) error

	// Update persists all mutable fields of the product. Returns false when
	// the product does not exist.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// SoftDelete flips the product's active flag off, keeping the row.
	// Returns false when the product does not exist.
	SoftDelete(ctx context.Context, id int64) (bool, error)

	// BulkUpdate applies the whitelisted column updates to the given
	// products and returns the number of rows touched. Unknown fields are
	// ignored.
	BulkUpdate(ctx context.Context, ids []int64, updates map[string]interface{}) (int64, error)

	// BulkDelete hard-deletes the given products and returns the number of
	// rows removed.
	BulkDelete(ctx context.Context, ids []int64) (int64, error)

	// Categories retrieves the distinct non-empty categories. When
	// activeOnly is true, only active products contribute.
	Categories(ctx context.Context, activeOnly bool) ([]string, error)

	// LowStock retrieves products with stock at or below the threshold.
	LowStock(ctx context.Context, threshold int) ([]model.Product, error)

	// UpdateStock sets the product's stock quantity directly. Returns false
	// when the product does not exist.
	UpdateStock(ctx context.Context, id int64, quantity int) (bool, error)

	// DecrementStock atomically decrements the product's stock within the
	// transaction, guarded so stock never goes negative. Returns false when
	// the guard rejects the decrement.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) (bool, error)

	// Analytics summarises the catalogue for the admin dashboard.
	Analytics(ctx context.Context) (*model.ProductAnalytics, error)
}

// CartRepository defines the interface for cart data access operations.
// Every operation is scoped to one session's cart.
type CartRepository interface {
	// GetBySession retrieves all cart items for the session with their
	// product rows joined in.
	GetBySession(ctx context.Context, sessionID string) ([]model.CartItem, error)

	// GetItem retrieves one cart item by ID within the session. Returns
	// (nil, nil) when it does not exist.
	GetItem(ctx context.Context, itemID int64, sessionID string) (*model.CartItem, error)

	// GetItemByProduct retrieves the session's cart item for a product.
	// Returns (nil, nil) when the product is not in the cart.
	GetItemByProduct(ctx context.Context, sessionID string, productID int64) (*model.CartItem, error)

	// Insert adds a new cart item and fills in its ID.
	Insert(ctx context.Context, item *model.CartItem) error

	// UpdateQuantity sets the quantity of a cart item.
	UpdateQuantity(ctx context.Context, itemID int64, quantity int) error

	// Delete removes one cart item.
	Delete(ctx context.Context, itemID int64) error

	// Clear removes all cart items for the session.
	Clear(ctx context.Context, sessionID string) error

	// ClearTx removes all cart items for the session within the transaction.
	ClearTx(ctx context.Context, tx pgx.Tx, sessionID string) error

	// Count returns the number of cart lines for the session.
	Count(ctx context.Context, sessionID string) (int, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction and
	// fills in its ID and creation time.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts the order's line items within the provided
	// transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByNumber retrieves an order with its items by order number.
	// Returns (nil, nil) when it does not exist.
	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error)

	// ListByEmail retrieves a customer's orders newest first, with the
	// total count before pagination.
	ListByEmail(ctx context.Context, email string, page, perPage int) ([]model.Order, int, error)

	// List retrieves orders newest first, optionally filtered by status,
	// with the total count before pagination.
	List(ctx context.Context, status string, page, perPage int) ([]model.Order, int, error)

	// UpdateStatus sets an order's status. Returns (nil, nil) when the
	// order does not exist.
	UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error)

	// Stats summarises orders for the admin dashboard.
	Stats(ctx context.Context) (*model.OrderStats, error)
}

// AdminRepository defines the interface for admin account data access.
type AdminRepository interface {
	// GetByID retrieves an admin by ID. Returns (nil, nil) when missing.
	GetByID(ctx context.Context, id int64) (*model.Admin, error)

	// GetByUsername retrieves an admin by username. Returns (nil, nil) when
	// missing.
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)

	// Count returns the number of admin accounts.
	Count(ctx context.Context) (int, error)

	// Create inserts a new admin and fills in its ID and creation time.
	Create(ctx context.Context, admin *model.Admin) error

	// UpdateLastLogin stamps the admin's last successful login.
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}
