package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	name        string
	description string
	price       string
	category    string
	stock       int
	imageURL    string
}

var sampleProducts = []seedProduct{
	{
		name:        "Backpack",
		description: "Durable backpack with laptop compartment and multiple pockets. Perfect for travel and daily use.",
		price:       "59.99",
		category:    "Accessories",
		stock:       50,
		imageURL:    "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=300&fit=crop",
	},
	{
		name:        "Running Shoes",
		description: "Lightweight running shoes with advanced cushioning and breathable mesh upper.",
		price:       "129.99",
		category:    "Sports & Fitness",
		stock:       30,
		imageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=300&fit=crop",
	},
	{
		name:        "Desk Lamp",
		description: "LED desk lamp with adjustable brightness and color temperature. USB charging port included.",
		price:       "49.99",
		category:    "Home & Garden",
		stock:       25,
		imageURL:    "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=300&fit=crop",
	},
	{
		name:        "Smartphone Case",
		description: "Protective smartphone case with shock absorption and wireless charging compatibility.",
		price:       "19.99",
		category:    "Electronics",
		stock:       100,
		imageURL:    "https://images.unsplash.com/photo-1556656793-08538906a9f8?w=400&h=300&fit=crop",
	},
	{
		name:        "Yoga Mat",
		description: "Non-slip yoga mat made from eco-friendly materials. Perfect for yoga, pilates, and fitness.",
		price:       "39.99",
		category:    "Sports & Fitness",
		stock:       40,
		imageURL:    "https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400&h=300&fit=crop",
	},
	{
		name:        "Coffee Maker",
		description: "Programmable coffee maker with 12-cup capacity and auto-shutoff feature.",
		price:       "79.99",
		category:    "Kitchen",
		stock:       20,
		imageURL:    "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?w=400&h=300&fit=crop",
	},
	{
		name:        "Wireless Headphones",
		description: "Premium noise-cancelling headphones with 30-hour battery life and quick charge.",
		price:       "199.99",
		category:    "Electronics",
		stock:       35,
		imageURL:    "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300&fit=crop",
	},
	{
		name:        "Water Bottle",
		description: "Insulated stainless steel water bottle that keeps drinks cold for 24 hours.",
		price:       "24.99",
		category:    "Accessories",
		stock:       60,
		imageURL:    "https://images.unsplash.com/photo-1602143407151-7111542de6e8?w=400&h=300&fit=crop",
	},
}

// SeedProducts inserts the sample catalogue if the products table is empty.
func SeedProducts(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		logger.Debug().Int("count", count).Msg("products table already seeded")
		return nil
	}

	query := `
		INSERT INTO products (name, description, price, category, stock_quantity, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	batch := &pgx.Batch{}
	for _, p := range sampleProducts {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return fmt.Errorf("invalid seed price %q: %w", p.price, err)
		}
		batch.Queue(query, p.name, p.description, price, p.category, p.stock, p.imageURL)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	for range sampleProducts {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	logger.Info().Int("count", len(sampleProducts)).Msg("seeded sample products")
	return nil
}
