package service

import (
	"context"

	"dinelt/internal/auth"
	"dinelt/internal/model"

	"github.com/google/uuid"
)

// AuthService defines account registration and token issuance.
type AuthService interface {
	// Register creates a user and its profile atomically.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login exchanges email and password for an access and refresh token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error)

	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AccessToken, error)
}

// ProfileService defines operations on profiles and the follow graph.
type ProfileService interface {
	Me(ctx context.Context, caller auth.Principal) (*model.ProfileDetail, error)
	GetByUsername(ctx context.Context, username string) (*model.ProfileDetail, error)
	Update(ctx context.Context, caller auth.Principal, req *model.ProfileUpdateRequest) (*model.ProfileDetail, error)

	// DeleteAccount removes the caller's profile together with the account.
	DeleteAccount(ctx context.Context, caller auth.Principal) error

	Follow(ctx context.Context, caller auth.Principal, username string) error
	Unfollow(ctx context.Context, caller auth.Principal, username string) error
}

// PostService defines operations on posts and comments.
type PostService interface {
	List(ctx context.Context, limit, offset int) ([]model.Post, error)
	Create(ctx context.Context, caller auth.Principal, req *model.PostRequest) (*model.Post, error)

	// Get, Update and Delete are restricted to the author.
	Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.PostUpdateRequest) (*model.Post, error)
	Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error

	Like(ctx context.Context, id uuid.UUID) (*model.Post, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
	AddComment(ctx context.Context, caller auth.Principal, postID uuid.UUID, req *model.CommentRequest) (*model.Comment, error)
}

// StoryService defines operations on expiring stories.
type StoryService interface {
	// List returns unexpired stories.
	List(ctx context.Context, limit, offset int) ([]model.Story, error)
	Create(ctx context.Context, caller auth.Principal, req *model.PostRequest) (*model.Story, error)
	Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Story, error)
	Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.PostUpdateRequest) (*model.Story, error)
	Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error

	// PurgeExpired deletes every expired story and returns how many were removed.
	PurgeExpired(ctx context.Context) (int64, error)
}

// RestaurantService defines operations on restaurants, managers and reviews.
type RestaurantService interface {
	List(ctx context.Context, limit, offset int) ([]model.Restaurant, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	Create(ctx context.Context, caller auth.Principal, req *model.RestaurantRequest) (*model.Restaurant, error)
	Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.RestaurantUpdateRequest) (*model.Restaurant, error)
	Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error

	ListManagers(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID) ([]model.Manager, error)
	AddManager(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ManagerRequest) (*model.Manager, error)
	RemoveManager(ctx context.Context, caller auth.Principal, restaurantID, managerID uuid.UUID) error

	ListReviews(ctx context.Context, restaurantID uuid.UUID) ([]model.Review, error)
	AddReview(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ReviewRequest) (*model.Review, error)
}

// FoodService defines operations on menu items.
type FoodService interface {
	List(ctx context.Context, restaurantID *uuid.UUID, limit, offset int) ([]model.Food, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Food, error)
	Create(ctx context.Context, caller auth.Principal, req *model.FoodRequest) (*model.Food, error)
	Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.FoodUpdateRequest) (*model.Food, error)
	Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error
}

// OrderService defines operations for order management.
type OrderService interface {
	// Create places an order and prices it from the current food prices.
	Create(ctx context.Context, caller auth.Principal, req *model.OrderRequest) (*model.Order, error)

	// AddItems appends items to a pending order and recomputes its total.
	AddItems(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.OrderItemsRequest) (*model.Order, error)

	Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Order, error)
	List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Order, error)

	// UpdateStatus applies a status transition permitted to the caller.
	UpdateStatus(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.OrderStatusRequest) (*model.Order, error)
}

// CartService defines operations on the caller's cart.
type CartService interface {
	Get(ctx context.Context, caller auth.Principal) (*model.Cart, error)
	AddItem(ctx context.Context, caller auth.Principal, req *model.CartItemRequest) (*model.Cart, error)
	UpdateItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID, req *model.CartItemUpdateRequest) (*model.Cart, error)
	RemoveItem(ctx context.Context, caller auth.Principal, itemID uuid.UUID) (*model.Cart, error)
	Clear(ctx context.Context, caller auth.Principal) error

	// Checkout turns the cart into one order per restaurant and empties it.
	Checkout(ctx context.Context, caller auth.Principal) ([]model.Order, error)
}

// ReservationService defines operations on reservations and reservation categories.
type ReservationService interface {
	List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Reservation, error)
	Create(ctx context.Context, caller auth.Principal, req *model.ReservationRequest) (*model.Reservation, error)
	Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Reservation, error)
	Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.ReservationUpdateRequest) (*model.Reservation, error)
	Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error

	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]model.ReservationCategory, error)
	CreateCategory(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ReservationCategoryRequest) (*model.ReservationCategory, error)
}

// AccommodationService defines operations on accommodations.
type AccommodationService interface {
	List(ctx context.Context, limit, offset int) ([]model.Accommodation, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Accommodation, error)
	Create(ctx context.Context, caller auth.Principal, req *model.AccommodationRequest) (*model.Accommodation, error)
	Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.AccommodationUpdateRequest) (*model.Accommodation, error)
	Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error
}

// BookingService defines operations on the caller's bookings.
type BookingService interface {
	// Create books an accommodation, rejecting ranges that overlap an existing booking.
	Create(ctx context.Context, caller auth.Principal, req *model.BookingRequest) (*model.Booking, error)
	List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Booking, error)
	Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Booking, error)
	Cancel(ctx context.Context, caller auth.Principal, id uuid.UUID) error
}
