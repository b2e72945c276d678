package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"dinelt/internal/auth"
	"dinelt/internal/media"
	"dinelt/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCaller = auth.Principal{
	UserID:   uuid.MustParse("6f1f0d1c-3c2a-4d8e-9b6a-1a2b3c4d5e6f"),
	Username: "alice",
	Email:    "alice@example.com",
}

// newRequest builds a request with an optional JSON body, caller and chi route params.
func newRequest(t *testing.T, method, target string, body any, p *auth.Principal, params map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	ctx := req.Context()
	if p != nil {
		ctx = auth.WithPrincipal(ctx, *p)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) model.ErrorResponse {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AccessToken, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AccessToken), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, caller auth.Principal, req *model.OrderRequest) (*model.Order, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) AddItems(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.OrderItemsRequest) (*model.Order, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Order, error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.OrderStatusRequest) (*model.Order, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, caller auth.Principal) (*model.Cart, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, caller auth.Principal, req *model.CartItemRequest) (*model.Cart, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID, req *model.CartItemUpdateRequest) (*model.Cart, error) {
	args := m.Called(ctx, caller, itemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID) (*model.Cart, error) {
	args := m.Called(ctx, caller, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, caller auth.Principal) error {
	return m.Called(ctx, caller).Error(0)
}

func (m *MockCartService) Checkout(ctx context.Context, caller auth.Principal) ([]model.Order, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockBookingService is a mock implementation of BookingService.
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, caller auth.Principal, req *model.BookingRequest) (*model.Booking, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Booking, error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *MockBookingService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingService) Cancel(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockProfileService is a mock implementation of ProfileService.
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Me(ctx context.Context, caller auth.Principal) (*model.ProfileDetail, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileDetail), args.Error(1)
}

func (m *MockProfileService) GetByUsername(ctx context.Context, username string) (*model.ProfileDetail, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileDetail), args.Error(1)
}

func (m *MockProfileService) Update(ctx context.Context, caller auth.Principal, req *model.ProfileUpdateRequest) (*model.ProfileDetail, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProfileDetail), args.Error(1)
}

func (m *MockProfileService) DeleteAccount(ctx context.Context, caller auth.Principal) error {
	return m.Called(ctx, caller).Error(0)
}

func (m *MockProfileService) Follow(ctx context.Context, caller auth.Principal, username string) error {
	return m.Called(ctx, caller, username).Error(0)
}

func (m *MockProfileService) Unfollow(ctx context.Context, caller auth.Principal, username string) error {
	return m.Called(ctx, caller, username).Error(0)
}

// MockStore is a mock implementation of media.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, obj media.Object) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}

// MockFoodService is a mock implementation of FoodService.
type MockFoodService struct {
	mock.Mock
}

func (m *MockFoodService) List(ctx context.Context, restaurantID *uuid.UUID, limit, offset int) ([]model.Food, error) {
	args := m.Called(ctx, restaurantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Food), args.Error(1)
}

func (m *MockFoodService) Get(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodService) Create(ctx context.Context, caller auth.Principal, req *model.FoodRequest) (*model.Food, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.FoodUpdateRequest) (*model.Food, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Food), args.Error(1)
}

func (m *MockFoodService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

// MockPostService is a mock implementation of PostService.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) Create(ctx context.Context, caller auth.Principal, req *model.PostRequest) (*model.Post, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.PostUpdateRequest) (*model.Post, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockPostService) Like(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, caller auth.Principal, postID uuid.UUID, req *model.CommentRequest) (*model.Comment, error) {
	args := m.Called(ctx, caller, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

// MockStoryService is a mock implementation of StoryService.
type MockStoryService struct {
	mock.Mock
}

func (m *MockStoryService) List(ctx context.Context, limit, offset int) ([]model.Story, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Story), args.Error(1)
}

func (m *MockStoryService) Create(ctx context.Context, caller auth.Principal, req *model.PostRequest) (*model.Story, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Story), args.Error(1)
}

func (m *MockStoryService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Story, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Story), args.Error(1)
}

func (m *MockStoryService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.PostUpdateRequest) (*model.Story, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Story), args.Error(1)
}

func (m *MockStoryService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockStoryService) PurgeExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockRestaurantService is a mock implementation of RestaurantService.
type MockRestaurantService struct {
	mock.Mock
}

func (m *MockRestaurantService) List(ctx context.Context, limit, offset int) ([]model.Restaurant, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Get(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Create(ctx context.Context, caller auth.Principal, req *model.RestaurantRequest) (*model.Restaurant, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.RestaurantUpdateRequest) (*model.Restaurant, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Restaurant), args.Error(1)
}

func (m *MockRestaurantService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockRestaurantService) ListManagers(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID) ([]model.Manager, error) {
	args := m.Called(ctx, caller, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Manager), args.Error(1)
}

func (m *MockRestaurantService) AddManager(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ManagerRequest) (*model.Manager, error) {
	args := m.Called(ctx, caller, restaurantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Manager), args.Error(1)
}

func (m *MockRestaurantService) RemoveManager(ctx context.Context, caller auth.Principal, restaurantID, managerID uuid.UUID) error {
	return m.Called(ctx, caller, restaurantID, managerID).Error(0)
}

func (m *MockRestaurantService) ListReviews(ctx context.Context, restaurantID uuid.UUID) ([]model.Review, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockRestaurantService) AddReview(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	args := m.Called(ctx, caller, restaurantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

// MockReservationService is a mock implementation of ReservationService.
type MockReservationService struct {
	mock.Mock
}

func (m *MockReservationService) List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Reservation, error) {
	args := m.Called(ctx, caller, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Reservation), args.Error(1)
}

func (m *MockReservationService) Create(ctx context.Context, caller auth.Principal, req *model.ReservationRequest) (*model.Reservation, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Reservation, error) {
	args := m.Called(ctx, caller, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.ReservationUpdateRequest) (*model.Reservation, error) {
	args := m.Called(ctx, caller, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Reservation), args.Error(1)
}

func (m *MockReservationService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	return m.Called(ctx, caller, id).Error(0)
}

func (m *MockReservationService) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]model.ReservationCategory, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ReservationCategory), args.Error(1)
}

func (m *MockReservationService) CreateCategory(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ReservationCategoryRequest) (*model.ReservationCategory, error) {
	args := m.Called(ctx, caller, restaurantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReservationCategory), args.Error(1)
}
