package integration

import (
	"context"
	"sync"
	"testing"

	"eliteshop/internal/model"
	"eliteshop/internal/repository"
	"eliteshop/internal/service"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderService(testDB *TestDB) (service.OrderService, repository.ProductRepository, repository.CartRepository) {
	logger := zerolog.Nop()
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	cartRepo := repository.NewCartRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)
	return service.NewOrderService(orderRepo, productRepo, cartRepo, logger), productRepo, cartRepo
}

func checkoutRequest() *model.CheckoutRequest {
	return &model.CheckoutRequest{
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		ShippingAddress: "1 Main St",
	}
}

func TestCheckout_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()

	t.Run("Successful checkout decrements stock and clears the cart", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		svc, productRepo, cartRepo := newOrderService(testDB)

		SeedCartItem(t, testDB.Pool, "session-a", ids[0], 2) // 10.00 each, stock 10
		SeedCartItem(t, testDB.Pool, "session-a", ids[1], 1) // 20.00 each, stock 5

		order, err := svc.Checkout(ctx, "session-a", checkoutRequest())
		require.NoError(t, err)

		assert.Regexp(t, `^ORD-\d{14}-[0-9A-F]{8}$`, order.OrderNumber)
		assert.Equal(t, model.OrderStatusConfirmed, order.Status)
		assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("40.00")))
		require.Len(t, order.Items, 2)

		p1, err := productRepo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, 8, p1.StockQuantity)

		p2, err := productRepo.GetByID(ctx, ids[1])
		require.NoError(t, err)
		assert.Equal(t, 4, p2.StockQuantity)

		count, err := cartRepo.Count(ctx, "session-a")
		require.NoError(t, err)
		assert.Zero(t, count)

		// The stored order reads back with price snapshots.
		stored, err := svc.GetByNumber(ctx, order.OrderNumber)
		require.NoError(t, err)
		require.Len(t, stored.Items, 2)
	})

	t.Run("Insufficient stock rolls back everything", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		svc, productRepo, cartRepo := newOrderService(testDB)

		SeedCartItem(t, testDB.Pool, "session-a", ids[0], 2)  // fine
		SeedCartItem(t, testDB.Pool, "session-a", ids[2], 99) // stock is 3

		_, err := svc.Checkout(ctx, "session-a", checkoutRequest())
		require.Error(t, err)

		var domainErr *model.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, 400, domainErr.Status)

		// Nothing moved: no order rows, no stock change, cart intact.
		p1, err := productRepo.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, 10, p1.StockQuantity)

		count, err := cartRepo.Count(ctx, "session-a")
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		var orderCount int
		require.NoError(t, testDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&orderCount))
		assert.Zero(t, orderCount)
	})

	t.Run("Concurrent checkouts never oversell", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		ids := SeedProducts(t, testDB.Pool)

		svc, productRepo, _ := newOrderService(testDB)

		// Product 3 has stock 3; two sessions each want 2.
		SeedCartItem(t, testDB.Pool, "session-a", ids[2], 2)
		SeedCartItem(t, testDB.Pool, "session-b", ids[2], 2)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i, sessionID := range []string{"session-a", "session-b"} {
			wg.Add(1)
			go func(i int, sessionID string) {
				defer wg.Done()
				_, errs[i] = svc.Checkout(ctx, sessionID, checkoutRequest())
			}(i, sessionID)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			}
		}
		assert.Equal(t, 1, succeeded)

		product, err := productRepo.GetByID(ctx, ids[2])
		require.NoError(t, err)
		assert.Equal(t, 1, product.StockQuantity)
	})

	t.Run("Empty cart cannot check out", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		svc, _, _ := newOrderService(testDB)
		_, err := svc.Checkout(ctx, "session-empty", checkoutRequest())
		assert.ErrorIs(t, err, model.ErrCartEmpty)
	})
}
