package integration

import (
	"context"
	"testing"

	"eliteshop/internal/model"
	"eliteshop/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("List returns seeded products with total", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, total, err := repo.List(ctx, model.ProductFilter{
			Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc",
		}, true)
		require.NoError(t, err)
		assert.Len(t, products, 5)
		assert.Equal(t, 5, total)
	})

	t.Run("List filters by category", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, total, err := repo.List(ctx, model.ProductFilter{
			Category: "Category A",
			Page:     1, PerPage: 10, SortBy: "price", SortOrder: "asc",
		}, true)
		require.NoError(t, err)
		assert.Len(t, products, 2)
		assert.Equal(t, 2, total)
		assert.True(t, products[0].Price.LessThan(products[1].Price))
	})

	t.Run("List searches name case-insensitively", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, total, err := repo.List(ctx, model.ProductFilter{
			Search: "product 3",
			Page:   1, PerPage: 10, SortBy: "created_at", SortOrder: "desc",
		}, true)
		require.NoError(t, err)
		require.Equal(t, 1, total)
		assert.Equal(t, "Test Product 3", products[0].Name)
	})

	t.Run("Soft delete hides from active listing but keeps the row", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		found, err := repo.SoftDelete(ctx, ids[0])
		require.NoError(t, err)
		assert.True(t, found)

		_, activeTotal, err := repo.List(ctx, model.ProductFilter{
			Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc",
		}, true)
		require.NoError(t, err)
		assert.Equal(t, 4, activeTotal)

		_, allTotal, err := repo.List(ctx, model.ProductFilter{
			Page: 1, PerPage: 10, SortBy: "created_at", SortOrder: "desc",
		}, false)
		require.NoError(t, err)
		assert.Equal(t, 5, allTotal)

		product, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.False(t, product.IsActive)
	})

	t.Run("GetByID returns nil for a missing product", func(t *testing.T) {
		product, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("BulkUpdate ignores unknown columns", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		updated, err := repo.BulkUpdate(ctx, ids[:2], map[string]interface{}{
			"category":      "Clearance",
			"drop_table":    "products",
			"password_hash": "nope",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated)

		product, err := repo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "Clearance", product.Category)
	})

	t.Run("LowStock respects the threshold boundary", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		products, err := repo.LowStock(ctx, 5)
		require.NoError(t, err)

		for _, p := range products {
			assert.LessOrEqual(t, p.StockQuantity, 5)
		}
		assert.Len(t, products, 3)
	})
}

func TestCartRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewCartRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Carts are scoped per session", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		SeedCartItem(t, testDB.Pool, "session-a", ids[0], 2)
		SeedCartItem(t, testDB.Pool, "session-b", ids[1], 1)

		itemsA, err := repo.GetBySession(ctx, "session-a")
		require.NoError(t, err)
		require.Len(t, itemsA, 1)
		assert.Equal(t, ids[0], itemsA[0].ProductID)
		require.NotNil(t, itemsA[0].Product)
		assert.True(t, itemsA[0].Product.Price.Equal(decimal.RequireFromString("10.00")))

		// One session's items are invisible to another.
		item, err := repo.GetItem(ctx, itemsA[0].ID, "session-b")
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("Clear empties only the target session", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		SeedCartItem(t, testDB.Pool, "session-a", ids[0], 2)
		SeedCartItem(t, testDB.Pool, "session-b", ids[1], 1)

		require.NoError(t, repo.Clear(ctx, "session-a"))

		countA, err := repo.Count(ctx, "session-a")
		require.NoError(t, err)
		assert.Zero(t, countA)

		countB, err := repo.Count(ctx, "session-b")
		require.NoError(t, err)
		assert.Equal(t, 1, countB)
	})
}
