package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (product, quantity) pair in a session's cart. There is at
// most one row per product per session; re-adding a product merges into the
// existing row.
type CartItem struct {
	ID        int64     `json:"id" db:"id"`
	SessionID string    `json:"-" db:"session_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Product is the live product row joined in for cart views.
	Product *Product `json:"product,omitempty" db:"-"`
}

// CartItemView is a cart line with its computed subtotal.
type CartItemView struct {
	CartItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartResponse is the full cart view. Total is computed, never persisted.
type CartResponse struct {
	Items     []CartItemView  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

// AddToCartRequest is the payload for adding a product to the cart.
type AddToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest is the payload for changing a cart line's quantity.
// A quantity of zero or less removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
