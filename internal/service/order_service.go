package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eliteshop/internal/model"
	"eliteshop/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultOrderPerPage      = 10
	defaultAdminOrderPerPage = 20

	// checkoutMaxAttempts bounds the order-number collision retries. The
	// random suffix makes collisions vanishingly rare; the orders table's
	// UNIQUE constraint is the actual guarantee.
	checkoutMaxAttempts = 3
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// generateOrderNumber builds a human-readable order number from the wall
// clock and a random suffix: ORD-<14 digits>-<8 uppercase hex>.
func generateOrderNumber() string {
	timestamp := time.Now().Format("20060102150405")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", timestamp, suffix)
}

// isOrderNumberConflict reports whether err is a unique violation on the
// order number column.
func isOrderNumberConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "order_number")
}

// Checkout validates the session's cart against live stock and places the
// order as one atomic transaction. On an order-number collision the whole
// transaction is retried with a fresh number.
func (s *orderService) Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.Order, error) {
	if err := validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	if sessionID == "" {
		return nil, model.ErrNoCartSession
	}

	cartItems, err := s.cartRepo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(cartItems) == 0 {
		return nil, model.ErrCartEmpty
	}

	var order *model.Order
	for attempt := 1; attempt <= checkoutMaxAttempts; attempt++ {
		order, err = s.placeOrder(ctx, sessionID, req, cartItems)
		if err == nil {
			break
		}
		if !isOrderNumberConflict(err) {
			return nil, err
		}
		s.logger.Warn().
			Int("attempt", attempt).
			Msg("order number collision, retrying with a fresh number")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Int("item_count", len(order.Items)).
		Str("total_amount", order.TotalAmount.String()).
		Msg("order placed")

	return order, nil
}

// placeOrder runs one checkout attempt inside a single transaction. Any
// failure rolls back the order, its items, the stock decrements and the
// cart clear together.
func (s *orderService) placeOrder(ctx context.Context, sessionID string, req *model.CheckoutRequest, cartItems []model.CartItem) (_ *model.Order, err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin checkout: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback checkout transaction")
			}
		}
	}()

	// Re-fetch every product inside the transaction: cart rows may be
	// stale, products may have been deactivated, stock may have moved.
	totalAmount := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(cartItems))

	for _, cartItem := range cartItems {
		product, perr := s.productRepo.GetByIDTx(ctx, tx, cartItem.ProductID)
		if perr != nil {
			err = perr
			return nil, err
		}
		if product == nil || !product.IsActive {
			err = model.NewProductUnavailableError(cartItem.ProductID)
			return nil, err
		}
		if product.StockQuantity < cartItem.Quantity {
			err = model.NewInsufficientStockError(product.Name)
			return nil, err
		}

		totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(cartItem.Quantity))))
		orderItems = append(orderItems, model.OrderItem{
			ProductID:   product.ID,
			Quantity:    cartItem.Quantity,
			Price:       product.Price,
			ProductName: product.Name,
		})
	}

	order := &model.Order{
		OrderNumber:     generateOrderNumber(),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     totalAmount,
		Status:          model.OrderStatusConfirmed,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	for i := range orderItems {
		orderItems[i].OrderID = order.ID
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		return nil, err
	}

	// Guarded decrement: a concurrent checkout may have taken the stock
	// between our read and here, in which case the guard fails and the
	// whole transaction rolls back.
	for i, item := range orderItems {
		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			err = model.NewInsufficientStockError(orderItems[i].ProductName)
			return nil, err
		}
	}

	if err = s.cartRepo.ClearTx(ctx, tx, sessionID); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}

	order.Items = orderItems
	return order, nil
}

// validateCheckoutRequest checks the required customer fields.
func validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return model.NewValidationError("Order data is required")
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return model.NewValidationError("customer_name is required")
	}
	if strings.TrimSpace(req.CustomerEmail) == "" {
		return model.NewValidationError("customer_email is required")
	}
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return model.NewValidationError("shipping_address is required")
	}
	return nil
}

// GetByNumber retrieves an order with its items by order number.
func (s *orderService) GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// ListByEmail retrieves a customer's orders, newest first.
func (s *orderService) ListByEmail(ctx context.Context, email string, page, perPage int) (*model.OrderListResponse, error) {
	page, perPage = clampOrderPagination(page, perPage, defaultOrderPerPage)

	orders, total, err := s.orderRepo.ListByEmail(ctx, email, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return newOrderListResponse(orders, total, page, perPage), nil
}

// List retrieves all orders, optionally filtered by status, newest first.
func (s *orderService) List(ctx context.Context, status string, page, perPage int) (*model.OrderListResponse, error) {
	if status != "" && !model.ValidOrderStatus(status) {
		return nil, model.ErrInvalidStatus
	}

	page, perPage = clampOrderPagination(page, perPage, defaultAdminOrderPerPage)

	orders, total, err := s.orderRepo.List(ctx, status, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return newOrderListResponse(orders, total, page, perPage), nil
}

// UpdateStatus transitions an order to one of the known statuses.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, model.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_number", order.OrderNumber).
		Str("status", status).
		Msg("order status updated")

	return order, nil
}

// Stats summarises orders for the admin dashboard.
func (s *orderService) Stats(ctx context.Context) (*model.OrderStats, error) {
	stats, err := s.orderRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get order stats: %w", err)
	}
	return stats, nil
}

func clampOrderPagination(page, perPage, perPageDefault int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = perPageDefault
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

func newOrderListResponse(orders []model.Order, total, page, perPage int) *model.OrderListResponse {
	if orders == nil {
		orders = []model.Order{}
	}
	return &model.OrderListResponse{
		Orders:      orders,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
		PerPage:     perPage,
	}
}
