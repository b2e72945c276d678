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

// orderService implements OrderService.
type orderService struct {
	orderRepo      repository.OrderRepository
	foodRepo       repository.FoodRepository
	restaurantRepo repository.RestaurantRepository
	publisher      events.Publisher
	logger         zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	foodRepo repository.FoodRepository,
	restaurantRepo repository.RestaurantRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		foodRepo:       foodRepo,
		restaurantRepo: restaurantRepo,
		publisher:      publisher,
		logger:         logger.With().Str("service", "order").Logger(),
	}
}

// Create places an order. Each item captures the food's current price and the
// total is stored together with the items.
func (s *orderService) Create(ctx context.Context, caller auth.Principal, req *model.OrderRequest) (*model.Order, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, req.Restaurant)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", req.Restaurant.String()).Msg("failed to get restaurant")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}

	order := &model.Order{
		ID:           uuid.New(),
		UserID:       caller.UserID,
		RestaurantID: restaurant.ID,
		Status:       model.OrderPending,
		OrderTime:    time.Now().UTC(),
	}

	items, err := priceItems(ctx, s.foodRepo, order.ID, restaurant.ID, req.Items)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("restaurant_id", restaurant.ID.String()).
			Int("item_count", len(req.Items)).
			Msg("order items rejected")
		return nil, err
	}
	order.Items = items
	order.TotalPrice = model.OrderTotal(items)
	if err := validTotal(order.TotalPrice); err != nil {
		return nil, err
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(items)).
		Str("total_price", order.TotalPrice.String()).
		Msg("order created successfully")

	metrics.RecordOrderCreated("direct", 1)
	publish(ctx, s.publisher, s.logger, orderCreatedEvent(order))

	return order, nil
}

// AddItems appends items to a pending order owned by the caller and
// recomputes the total from every line.
func (s *orderService) AddItems(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.OrderItemsRequest) (*model.Order, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to add order items: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to lock order")
		return nil, fmt.Errorf("failed to add order items: %w", err)
	}

	// Domain failures below still need the rollback, so they go through err.
	switch {
	case order == nil:
		err = model.ErrOrderNotFound
	case order.UserID != caller.UserID:
		err = model.ErrForbidden
	case order.Status != model.OrderPending:
		err = model.ErrOrderNotPending
	}
	if err != nil {
		return nil, err
	}

	var added []model.OrderItem
	added, err = priceItems(ctx, s.foodRepo, order.ID, order.RestaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, added); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to create order items")
		return nil, fmt.Errorf("failed to add order items: %w", err)
	}

	order.Items, err = s.orderRepo.ListItems(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to add order items: %w", err)
	}
	order.TotalPrice = model.OrderTotal(order.Items)
	if err = validTotal(order.TotalPrice); err != nil {
		return nil, err
	}

	if err = s.orderRepo.UpdateTotal(ctx, tx, id, order.TotalPrice); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order total")
		return nil, fmt.Errorf("failed to add order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to add order items: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Int("added", len(added)).
		Str("total_price", order.TotalPrice.String()).
		Msg("order items added")

	return order, nil
}

// Get returns the caller's own order.
func (s *orderService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Order, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if order == nil {
		s.logger.Debug().Str("order_id", id.String()).Msg("order not found")
		return nil, model.ErrOrderNotFound
	}

	if order.UserID != caller.UserID {
		return nil, model.ErrForbidden
	}

	order.Items = nonNil(items)
	return order, nil
}

func (s *orderService) List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Order, error) {
	limit, offset = normalizePage(limit, offset)

	orders, err := s.orderRepo.ListByUser(ctx, caller.UserID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return nonNil(orders), nil
}

// UpdateStatus applies a transition under a row lock so concurrent updates
// cannot both leave Pending.
func (s *orderService) UpdateStatus(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.OrderStatusRequest) (*model.Order, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to lock order")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	var roles orderRole
	roles, err = s.rolesFor(ctx, caller, order)
	if err != nil {
		return nil, err
	}
	if roles == 0 {
		err = model.ErrForbidden
		return nil, err
	}

	from := order.Status

	// Pending to Pending by the restaurant only moves the delivery estimate.
	etaOnly := req.Status == from && from == model.OrderPending && roles&roleRestaurant != 0
	if !etaOnly {
		if err = checkTransition(from, req.Status, roles); err != nil {
			s.logger.Warn().
				Str("order_id", id.String()).
				Str("from", string(from)).
				Str("to", string(req.Status)).
				Msg("order status transition rejected")
			return nil, err
		}
	}

	eta := order.EstimatedDeliveryTime
	if req.EstimatedDeliveryTime != nil {
		eta = req.EstimatedDeliveryTime
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, id, req.Status, eta); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Items, err = s.orderRepo.ListItems(ctx, tx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = req.Status
	order.EstimatedDeliveryTime = eta

	if from != order.Status {
		s.logger.Info().
			Str("order_id", id.String()).
			Str("from", string(from)).
			Str("to", string(order.Status)).
			Msg("order status changed")

		metrics.RecordOrderTransition(string(order.Status))
		publish(ctx, s.publisher, s.logger, events.New(events.OrderStatusChanged, order.ID.String(), map[string]any{
			"order_id": order.ID,
			"from":     from,
			"to":       order.Status,
		}))
	}

	return order, nil
}

// rolesFor computes how caller relates to order.
func (s *orderService) rolesFor(ctx context.Context, caller auth.Principal, order *model.Order) (orderRole, error) {
	var roles orderRole
	if order.UserID == caller.UserID {
		roles |= roleCustomer
	}

	restaurant, err := s.restaurantRepo.GetByID(ctx, order.RestaurantID)
	if err != nil {
		return 0, fmt.Errorf("failed to get restaurant: %w", err)
	}
	if restaurant == nil {
		return roles, nil
	}

	ok, err := isOwnerOrManager(ctx, s.restaurantRepo, caller, restaurant)
	if err != nil {
		return 0, err
	}
	if ok {
		roles |= roleRestaurant
	}
	return roles, nil
}

// priceItems resolves the requested foods, checks that they all belong to
// restaurantID and captures their current prices as order lines.
func priceItems(
	ctx context.Context,
	foods repository.FoodRepository,
	orderID, restaurantID uuid.UUID,
	reqItems []model.OrderItemRequest,
) ([]model.OrderItem, error) {
	if len(reqItems) == 0 {
		return nil, model.NewValidationError("order must contain at least one item")
	}

	ids := make([]uuid.UUID, 0, len(reqItems))
	seen := make(map[uuid.UUID]struct{}, len(reqItems))
	for _, item := range reqItems {
		if err := validQuantity(item.Quantity); err != nil {
			return nil, err
		}
		if _, ok := seen[item.Food]; !ok {
			seen[item.Food] = struct{}{}
			ids = append(ids, item.Food)
		}
	}

	found, err := foods.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get foods: %w", err)
	}
	if len(found) != len(ids) {
		return nil, model.ErrFoodNotFound
	}

	byID := make(map[uuid.UUID]model.Food, len(found))
	for _, f := range found {
		if f.RestaurantID != restaurantID {
			return nil, model.ErrFoodRestaurant
		}
		byID[f.ID] = f
	}

	items := make([]model.OrderItem, len(reqItems))
	for i, item := range reqItems {
		food := byID[item.Food]
		items[i] = model.OrderItem{
			ID:       uuid.New(),
			OrderID:  orderID,
			FoodID:   food.ID,
			FoodName: food.Name,
			Quantity: item.Quantity,
			Price:    food.Price,
		}
	}
	return items, nil
}

func orderCreatedEvent(order *model.Order) events.Event {
	return events.New(events.OrderCreated, order.ID.String(), map[string]any{
		"order_id":      order.ID,
		"user_id":       order.UserID,
		"restaurant_id": order.RestaurantID,
		"total_price":   order.TotalPrice,
		"item_count":    len(order.Items),
	})
}
