package service

import (
	"context"
	"errors"
	"testing"

	"dinelt/internal/auth"
	"dinelt/internal/events"
	"dinelt/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	cartRepo  *MockCartRepository
	orderRepo *MockOrderRepository
	foodRepo  *MockFoodRepository
	publisher *recordingPublisher
	tx        *MockTx
	service   CartService
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		cartRepo:  new(MockCartRepository),
		orderRepo: new(MockOrderRepository),
		foodRepo:  new(MockFoodRepository),
		publisher: &recordingPublisher{},
		tx:        new(MockTx),
	}
	f.service = NewCartService(f.cartRepo, f.orderRepo, f.foodRepo, f.publisher, zerolog.Nop())
	return f
}

func TestCartService_Get_ComputesTotals(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture()
	caller := auth.Principal{UserID: uuid.New()}
	cart := &model.Cart{ID: uuid.New(), UserID: caller.UserID}

	f.cartRepo.On("GetOrCreate", ctx, caller.UserID).Return(cart, nil)
	f.cartRepo.On("ListItems", ctx, cart.ID).Return([]model.CartItem{
		{ID: uuid.New(), FoodPrice: decimal.RequireFromString("3.333"), Quantity: 3},
		{ID: uuid.New(), FoodPrice: decimal.RequireFromString("1.10"), Quantity: 2},
	}, nil)

	got, err := f.service.Get(ctx, caller)

	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "10.00", got.Items[0].TotalPrice.StringFixed(2))
	assert.Equal(t, "2.20", got.Items[1].TotalPrice.StringFixed(2))
	assert.Equal(t, "12.20", got.TotalPrice.StringFixed(2))
	f.cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	caller := auth.Principal{UserID: uuid.New()}
	foodID := uuid.New()

	tests := []struct {
		name      string
		quantity  int
		food      *model.Food
		expectErr error
	}{
		{name: "Success", quantity: 2, food: &model.Food{ID: foodID, Price: decimal.NewFromInt(4)}},
		{name: "Zero quantity", quantity: 0, expectErr: model.ErrInvalidQuantity},
		{name: "Quantity above limit", quantity: model.MaxQuantity + 1, expectErr: model.ErrQuantityTooLarge},
		{name: "Unknown food", quantity: 1, expectErr: model.ErrFoodNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCartFixture()
			cart := &model.Cart{ID: uuid.New(), UserID: caller.UserID}

			if tt.quantity > 0 && tt.quantity <= model.MaxQuantity {
				if tt.food != nil {
					f.foodRepo.On("GetByID", ctx, foodID).Return(tt.food, nil)
					f.cartRepo.On("GetOrCreate", ctx, caller.UserID).Return(cart, nil)
					f.cartRepo.On("UpsertItem", ctx, cart.ID, foodID, tt.quantity).Return(nil)
					f.cartRepo.On("ListItems", ctx, cart.ID).Return([]model.CartItem{
						{FoodID: foodID, FoodPrice: tt.food.Price, Quantity: tt.quantity},
					}, nil)
				} else {
					f.foodRepo.On("GetByID", ctx, foodID).Return(nil, nil)
				}
			}

			got, err := f.service.AddItem(ctx, caller, &model.CartItemRequest{Food: foodID, Quantity: tt.quantity})

			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "8.00", got.TotalPrice.StringFixed(2))
			}
			f.cartRepo.AssertExpectations(t)
			f.foodRepo.AssertExpectations(t)
		})
	}
}

func TestCartService_UpdateAndRemove_ForeignItem(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture()
	caller := auth.Principal{UserID: uuid.New()}
	cart := &model.Cart{ID: uuid.New(), UserID: caller.UserID}
	itemID := uuid.New()

	f.cartRepo.On("GetOrCreate", ctx, caller.UserID).Return(cart, nil)
	f.cartRepo.On("UpdateItemQuantity", ctx, cart.ID, itemID, 3).Return(false, nil)
	f.cartRepo.On("RemoveItem", ctx, cart.ID, itemID).Return(false, nil)

	_, err := f.service.UpdateItem(ctx, caller, itemID, &model.CartItemUpdateRequest{Quantity: 3})
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)

	_, err = f.service.RemoveItem(ctx, caller, itemID)
	assert.ErrorIs(t, err, model.ErrCartItemNotFound)

	f.cartRepo.AssertExpectations(t)
}

func TestCartService_Checkout_OneOrderPerRestaurant(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture()
	caller := auth.Principal{UserID: uuid.New()}
	cart := &model.Cart{ID: uuid.New(), UserID: caller.UserID}

	pizzeria, sushiBar := uuid.New(), uuid.New()
	items := []model.CartItem{
		{ID: uuid.New(), FoodID: uuid.New(), FoodName: "Margherita", FoodPrice: decimal.RequireFromString("8.00"), RestaurantID: pizzeria, Quantity: 2},
		{ID: uuid.New(), FoodID: uuid.New(), FoodName: "Nigiri", FoodPrice: decimal.RequireFromString("4.50"), RestaurantID: sushiBar, Quantity: 1},
		{ID: uuid.New(), FoodID: uuid.New(), FoodName: "Calzone", FoodPrice: decimal.RequireFromString("9.25"), RestaurantID: pizzeria, Quantity: 1},
	}
	converted := []uuid.UUID{items[0].ID, items[1].ID, items[2].ID}

	f.cartRepo.On("GetOrCreate", ctx, caller.UserID).Return(cart, nil)
	f.orderRepo.On("BeginTx", ctx).Return(f.tx, nil)
	f.cartRepo.On("LockTx", ctx, f.tx, cart.ID).Return(nil)
	f.cartRepo.On("ListItemsTx", ctx, f.tx, cart.ID).Return(items, nil)
	f.orderRepo.On("CreateOrder", ctx, f.tx, mock.AnythingOfType("*model.Order")).Return(nil).Twice()
	f.orderRepo.On("CreateOrderItems", ctx, f.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil).Twice()
	f.cartRepo.On("RemoveItemsTx", ctx, f.tx, cart.ID, converted).Return(nil)
	f.tx.On("Commit", ctx).Return(nil)

	orders, err := f.service.Checkout(ctx, caller)

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, pizzeria, orders[0].RestaurantID)
	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, "25.25", orders[0].TotalPrice.StringFixed(2))
	assert.Equal(t, sushiBar, orders[1].RestaurantID)
	assert.Equal(t, "4.50", orders[1].TotalPrice.StringFixed(2))
	for _, o := range orders {
		assert.Equal(t, model.OrderPending, o.Status)
		assert.Equal(t, caller.UserID, o.UserID)
	}
	assert.Equal(t, []string{events.OrderCreated, events.OrderCreated}, f.publisher.types())

	f.cartRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
	f.tx.AssertExpectations(t)
	f.cartRepo.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestCartService_Checkout_Rejected(t *testing.T) {
	restaurantID := uuid.New()

	tests := []struct {
		name      string
		items     []model.CartItem
		expectErr error
	}{
		{
			name:      "Empty cart",
			items:     []model.CartItem{},
			expectErr: model.ErrEmptyCart,
		},
		{
			name: "Order total does not fit",
			items: []model.CartItem{
				{ID: uuid.New(), FoodID: uuid.New(), FoodPrice: decimal.RequireFromString("99999999.99"), RestaurantID: restaurantID, Quantity: 2},
			},
			expectErr: model.ErrTotalTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newCartFixture()
			caller := auth.Principal{UserID: uuid.New()}
			cart := &model.Cart{ID: uuid.New(), UserID: caller.UserID}

			f.cartRepo.On("GetOrCreate", ctx, caller.UserID).Return(cart, nil)
			f.orderRepo.On("BeginTx", ctx).Return(f.tx, nil)
			f.cartRepo.On("LockTx", ctx, f.tx, cart.ID).Return(nil)
			f.cartRepo.On("ListItemsTx", ctx, f.tx, cart.ID).Return(tt.items, nil)
			f.tx.On("Rollback", ctx).Return(nil)

			orders, err := f.service.Checkout(ctx, caller)

			assert.ErrorIs(t, err, tt.expectErr)
			assert.Nil(t, orders)
			assert.True(t, f.tx.rolledBack)
			f.orderRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything)
			f.cartRepo.AssertNotCalled(t, "RemoveItemsTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCartService_Checkout_RollsBackWhenClearFails(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture()
	caller := auth.Principal{UserID: uuid.New()}
	cart := &model.Cart{ID: uuid.New(), UserID: caller.UserID}
	item := model.CartItem{ID: uuid.New(), FoodID: uuid.New(), FoodPrice: decimal.NewFromInt(1), RestaurantID: uuid.New(), Quantity: 1}

	f.cartRepo.On("GetOrCreate", ctx, caller.UserID).Return(cart, nil)
	f.orderRepo.On("BeginTx", ctx).Return(f.tx, nil)
	f.cartRepo.On("LockTx", ctx, f.tx, cart.ID).Return(nil)
	f.cartRepo.On("ListItemsTx", ctx, f.tx, cart.ID).Return([]model.CartItem{item}, nil)
	f.orderRepo.On("CreateOrder", ctx, f.tx, mock.AnythingOfType("*model.Order")).Return(nil)
	f.orderRepo.On("CreateOrderItems", ctx, f.tx, mock.AnythingOfType("[]model.OrderItem")).Return(nil)
	f.cartRepo.On("RemoveItemsTx", ctx, f.tx, cart.ID, []uuid.UUID{item.ID}).Return(errors.New("database error"))
	f.tx.On("Rollback", ctx).Return(nil)

	_, err := f.service.Checkout(ctx, caller)

	require.Error(t, err)
	assert.True(t, f.tx.rolledBack)
	assert.False(t, f.tx.committed)
	assert.Empty(t, f.publisher.events)
	f.tx.AssertExpectations(t)
}
