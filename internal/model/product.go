package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a product in the catalogue. Inactive products are
// soft-deleted: hidden from the storefront but kept for order history.
type Product struct {
	ID            int64           `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Category      string          `json:"category" db:"category"`
	StockQuantity int             `json:"stock_quantity" db:"stock_quantity"`
	ImageURL      string          `json:"image_url" db:"image_url"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// ProductFilter holds the listing filters for the public catalogue.
type ProductFilter struct {
	Category  string
	Search    string
	SortBy    string // price, name or created_at
	SortOrder string // asc or desc
	Page      int
	PerPage   int
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      string           `json:"category"`
	StockQuantity int              `json:"stock_quantity"`
	ImageURL      string           `json:"image_url"`
}

// UpdateProductRequest is the payload for a partial product update.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	Category      *string          `json:"category"`
	StockQuantity *int             `json:"stock_quantity"`
	ImageURL      *string          `json:"image_url"`
	IsActive      *bool            `json:"is_active"`
}

// BulkUpdateRequest applies a field->value map to a set of products.
type BulkUpdateRequest struct {
	ProductIDs []int64                `json:"product_ids"`
	Updates    map[string]interface{} `json:"updates"`
}

// BulkDeleteRequest hard-deletes a set of products.
type BulkDeleteRequest struct {
	ProductIDs []int64 `json:"product_ids"`
}

// ProductListResponse is a paginated product listing.
type ProductListResponse struct {
	Products    []Product `json:"products"`
	Total       int       `json:"total"`
	Pages       int       `json:"pages"`
	CurrentPage int       `json:"current_page"`
	PerPage     int       `json:"per_page"`
}

// CategoryCount is the number of products in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// CategoryPrice is the average product price in one category.
type CategoryPrice struct {
	Category string          `json:"category"`
	AvgPrice decimal.Decimal `json:"avg_price"`
}

// ProductAnalytics summarises the catalogue for the admin dashboard.
type ProductAnalytics struct {
	TotalProducts        int             `json:"total_products"`
	LowStockProducts     int             `json:"low_stock_products"`
	OutOfStockProducts   int             `json:"out_of_stock_products"`
	CategoryDistribution []CategoryCount `json:"category_distribution"`
	PriceByCategory      []CategoryPrice `json:"price_by_category"`
}
