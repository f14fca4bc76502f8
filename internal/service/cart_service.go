package service

import (
	"context"
	"fmt"

	"eliteshop/internal/model"
	"eliteshop/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService. Stock checks here are read-time only;
// checkout re-validates inside its transaction.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Get retrieves the cart with per-item subtotals and the computed total.
func (s *cartService) Get(ctx context.Context, sessionID string) (*model.CartResponse, error) {
	items, err := s.cartRepo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	resp := &model.CartResponse{
		Items:     make([]model.CartItemView, 0, len(items)),
		Total:     decimal.Zero,
		ItemCount: len(items),
	}

	for _, item := range items {
		view := model.CartItemView{CartItem: item}
		if item.Product != nil {
			view.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			resp.Total = resp.Total.Add(view.Subtotal)
		}
		resp.Items = append(resp.Items, view)
	}

	return resp, nil
}

// Add puts a product in the cart, merging into an existing line. Fails when
// the product is missing or inactive, or when the merged quantity would
// exceed the current stock.
func (s *cartService) Add(ctx context.Context, sessionID string, req *model.AddToCartRequest) error {
	if req.ProductID == 0 {
		return model.NewValidationError("Product ID and quantity are required")
	}
	if req.Quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.IsActive {
		return model.ErrProductNotFound
	}

	if product.StockQuantity < req.Quantity {
		return model.ErrInsufficientStock
	}

	existing, err := s.cartRepo.GetItemByProduct(ctx, sessionID, req.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get cart item: %w", err)
	}

	if existing != nil {
		newQuantity := existing.Quantity + req.Quantity
		if product.StockQuantity < newQuantity {
			return model.ErrInsufficientStock
		}
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, newQuantity); err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}

		s.logger.Debug().
			Int64("product_id", req.ProductID).
			Int("quantity", newQuantity).
			Msg("merged product into existing cart line")
		return nil
	}

	item := &model.CartItem{
		SessionID: sessionID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}
	if err := s.cartRepo.Insert(ctx, item); err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Debug().
		Int64("product_id", req.ProductID).
		Int("quantity", req.Quantity).
		Msg("added product to cart")
	return nil
}

// Update sets a cart line's quantity; zero or less removes the line.
func (s *cartService) Update(ctx context.Context, sessionID string, itemID int64, quantity int) error {
	item, err := s.cartRepo.GetItem(ctx, itemID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil {
		return model.ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
			return fmt.Errorf("failed to remove cart item: %w", err)
		}
		return nil
	}

	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || product.StockQuantity < quantity {
		return model.ErrInsufficientStock
	}

	if err := s.cartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	return nil
}

// Remove deletes one cart line.
func (s *cartService) Remove(ctx context.Context, sessionID string, itemID int64) error {
	item, err := s.cartRepo.GetItem(ctx, itemID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to get cart item: %w", err)
	}
	if item == nil {
		return model.ErrCartItemNotFound
	}

	if err := s.cartRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}

	return nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, sessionID string) error {
	if err := s.cartRepo.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Count returns the number of cart lines.
func (s *cartService) Count(ctx context.Context, sessionID string) (int, error) {
	count, err := s.cartRepo.Count(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}
	return count, nil
}
