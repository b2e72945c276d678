package service

import (
	"context"
	"fmt"
	"time"

	"dinelt/internal/auth"
	"dinelt/internal/events"
	"dinelt/internal/metrics"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo  repository.CartRepository
	orderRepo repository.OrderRepository
	foodRepo  repository.FoodRepository
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	foodRepo repository.FoodRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:  cartRepo,
		orderRepo: orderRepo,
		foodRepo:  foodRepo,
		publisher: publisher,
		logger:    logger.With().Str("service", "cart").Logger(),
	}
}

// Get returns the caller's cart with current prices and totals.
func (s *cartService) Get(ctx context.Context, caller auth.Principal) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return s.load(ctx, cart)
}

// AddItem sets the quantity of a food in the cart.
func (s *cartService) AddItem(ctx context.Context, caller auth.Principal, req *model.CartItemRequest) (*model.Cart, error) {
	if err := validQuantity(req.Quantity); err != nil {
		return nil, err
	}

	food, err := s.foodRepo.GetByID(ctx, req.Food)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	if food == nil {
		return nil, model.ErrFoodNotFound
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	if err := s.cartRepo.UpsertItem(ctx, cart.ID, food.ID, req.Quantity); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to add cart item")
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return s.load(ctx, cart)
}

func (s *cartService) UpdateItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID, req *model.CartItemUpdateRequest) (*model.Cart, error) {
	if err := validQuantity(req.Quantity); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	ok, err := s.cartRepo.UpdateItemQuantity(ctx, cart.ID, itemID, req.Quantity)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to update cart item")
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if !ok {
		return nil, model.ErrCartItemNotFound
	}
	return s.load(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID) (*model.Cart, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	ok, err := s.cartRepo.RemoveItem(ctx, cart.ID, itemID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_item_id", itemID.String()).Msg("failed to remove cart item")
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !ok {
		return nil, model.ErrCartItemNotFound
	}
	return s.load(ctx, cart)
}

func (s *cartService) Clear(ctx context.Context, caller auth.Principal) error {
	cart, err := s.cartRepo.GetOrCreate(ctx, caller.UserID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Checkout creates one pending order per restaurant in the cart and removes
// the converted lines, all in one transaction. The cart row stays locked
// from the read of the lines until commit.
func (s *cartService) Checkout(ctx context.Context, caller auth.Principal) ([]model.Order, error) {
	cart, err := s.cartRepo.GetOrCreate(ctx, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to get cart")
		return nil, fmt.Errorf("failed to checkout cart: %w", err)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to checkout cart: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.cartRepo.LockTx(ctx, tx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to checkout cart: %w", err)
	}

	var items []model.CartItem
	items, err = s.cartRepo.ListItemsTx(ctx, tx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to checkout cart: %w", err)
	}
	if len(items) == 0 {
		err = model.ErrEmptyCart
		return nil, err
	}
	cart.Items = items

	now := time.Now().UTC()
	restaurants, groups := cart.GroupByRestaurant()
	orders := make([]model.Order, 0, len(restaurants))
	for _, restaurantID := range restaurants {
		order := model.Order{
			ID:           uuid.New(),
			UserID:       caller.UserID,
			RestaurantID: restaurantID,
			Status:       model.OrderPending,
			OrderTime:    now,
		}
		for _, line := range groups[restaurantID] {
			order.Items = append(order.Items, model.OrderItem{
				ID:       uuid.New(),
				OrderID:  order.ID,
				FoodID:   line.FoodID,
				FoodName: line.FoodName,
				Quantity: line.Quantity,
				Price:    line.FoodPrice,
			})
		}
		order.TotalPrice = model.OrderTotal(order.Items)
		if err = validTotal(order.TotalPrice); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	for i := range orders {
		if err = s.orderRepo.CreateOrder(ctx, tx, &orders[i]); err != nil {
			s.logger.Error().Err(err).Str("order_id", orders[i].ID.String()).Msg("failed to create order")
			return nil, fmt.Errorf("failed to checkout cart: %w", err)
		}
		if err = s.orderRepo.CreateOrderItems(ctx, tx, orders[i].Items); err != nil {
			s.logger.Error().Err(err).Str("order_id", orders[i].ID.String()).Msg("failed to create order items")
			return nil, fmt.Errorf("failed to checkout cart: %w", err)
		}
	}

	converted := make([]uuid.UUID, len(items))
	for i, item := range items {
		converted[i] = item.ID
	}
	if err = s.cartRepo.RemoveItemsTx(ctx, tx, cart.ID, converted); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to clear cart")
		return nil, fmt.Errorf("failed to checkout cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to checkout cart: %w", err)
	}

	s.logger.Info().
		Str("user_id", caller.UserID.String()).
		Int("order_count", len(orders)).
		Msg("cart checked out")

	metrics.RecordOrderCreated("cart", len(orders))
	evts := make([]events.Event, len(orders))
	for i := range orders {
		evts[i] = orderCreatedEvent(&orders[i])
	}
	publish(ctx, s.publisher, s.logger, evts...)

	return orders, nil
}

// load fills the cart lines and totals.
func (s *cartService) load(ctx context.Context, cart *model.Cart) (*model.Cart, error) {
	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to list cart items")
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	cart.Items = nonNil(items)
	cart.ComputeTotals()
	return cart, nil
}
