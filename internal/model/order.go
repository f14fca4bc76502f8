package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order statuses. An order is immutable once created except for these
// transitions.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus reports whether s is one of the known order statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a placed customer order.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	OrderNumber     string          `json:"order_number" db:"order_number"`
	CustomerName    string          `json:"customer_name" db:"customer_name"`
	CustomerEmail   string          `json:"customer_email" db:"customer_email"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	Status          string          `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	Items []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderItem is one line of an order. Price is the unit price captured at
// order time, decoupled from the live product price.
type OrderItem struct {
	ID        int64           `json:"id" db:"id"`
	OrderID   int64           `json:"-" db:"order_id"`
	ProductID int64           `json:"product_id" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`

	// ProductName is joined in for order views; falls back to the live
	// product row, which may be inactive but is never hard-deleted while
	// referenced.
	ProductName string `json:"product_name,omitempty" db:"-"`
}

// CheckoutRequest is the payload for placing an order from the session cart.
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	ShippingAddress string `json:"shipping_address"`
}

// UpdateOrderStatusRequest is the payload for an admin status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderListResponse is a paginated order listing.
type OrderListResponse struct {
	Orders      []Order `json:"orders"`
	Total       int     `json:"total"`
	Pages       int     `json:"pages"`
	CurrentPage int     `json:"current_page"`
	PerPage     int     `json:"per_page"`
}

// OrderStats summarises orders for the admin dashboard.
type OrderStats struct {
	TotalOrders        int             `json:"total_orders"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	RecentOrders30Days int             `json:"recent_orders_30_days"`
	StatusBreakdown    map[string]int  `json:"status_breakdown"`
}
