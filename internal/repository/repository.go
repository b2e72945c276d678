package repository

import (
	"context"
	"time"

	"dinelt/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a user within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, user *model.User) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Delete removes the user and everything that cascades from it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository defines data access for profiles and the follow graph.
type ProfileRepository interface {
	// Create inserts a profile within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, profile *model.Profile) error

	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	GetByUsername(ctx context.Context, username string) (*model.Profile, error)
	Update(ctx context.Context, profile *model.Profile) error

	// Follow records that follower follows followee. Repeated follows are no-ops.
	Follow(ctx context.Context, followerID, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// Followers returns the usernames following the profile.
	Followers(ctx context.Context, profileID uuid.UUID) ([]string, error)
	// Following returns the usernames the profile follows.
	Following(ctx context.Context, profileID uuid.UUID) ([]string, error)
}

// PostRepository defines data access for posts and their comments.
type PostRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Like increments the like counter and returns the updated post, or nil if it does not exist.
	Like(ctx context.Context, id uuid.UUID) (*model.Post, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
}

// StoryRepository defines data access for stories.
type StoryRepository interface {
	// ListActive returns stories not yet expired at now, newest first.
	ListActive(ctx context.Context, now time.Time, limit, offset int) ([]model.Story, error)
	ListActiveByAuthor(ctx context.Context, authorID uuid.UUID, now time.Time) ([]model.Story, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error)
	Create(ctx context.Context, story *model.Story) error
	Update(ctx context.Context, story *model.Story) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes stories expired at now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// RestaurantRepository defines data access for restaurants, managers and reviews.
type RestaurantRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
	Create(ctx context.Context, restaurant *model.Restaurant) error
	Update(ctx context.Context, restaurant *model.Restaurant) error
	Delete(ctx context.Context, id uuid.UUID) error

	// IsManager reports whether userID holds a manager record for restaurantID.
	IsManager(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error)
	AddManager(ctx context.Context, manager *model.Manager) error
	ListManagers(ctx context.Context, restaurantID uuid.UUID) ([]model.Manager, error)
	GetManager(ctx context.Context, id uuid.UUID) (*model.Manager, error)
	RemoveManager(ctx context.Context, id uuid.UUID) error

	CreateReview(ctx context.Context, review *model.Review) error
	ListReviews(ctx context.Context, restaurantID uuid.UUID) ([]model.Review, error)
}

// FoodRepository defines data access for menu items.
type FoodRepository interface {
	// List returns foods, restricted to one restaurant when restaurantID is set.
	List(ctx context.Context, restaurantID *uuid.UUID, limit, offset int) ([]model.Food, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Food, error)

	// GetByIDs retrieves multiple foods by their IDs. Unknown IDs are skipped.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Food, error)

	Create(ctx context.Context, food *model.Food) error
	Update(ctx context.Context, food *model.Food) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// ListItems returns the items of an order within the provided transaction.
	ListItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) ([]model.OrderItem, error)

	// UpdateTotal stores a recomputed order total within the provided transaction.
	UpdateTotal(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, total decimal.Decimal) error

	// GetForUpdate locks and returns the order row, or nil if it does not exist.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// UpdateStatus sets the status and estimated delivery time within the provided transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus, eta *time.Time) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// ListByUser returns a user's orders with their items, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Order, error)
}

// CartRepository defines data access for carts.
type CartRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetOrCreate returns the user's cart, creating an empty one on first use.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// ListItems returns cart lines joined with the current food name, price and restaurant.
	ListItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItem, error)

	// ListItemsTx is ListItems within the provided transaction.
	ListItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) ([]model.CartItem, error)

	// LockTx locks the cart row until tx ends. Item writes take the same lock.
	LockTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error

	// UpsertItem sets the quantity of food in the cart, adding the line if needed.
	UpsertItem(ctx context.Context, cartID, foodID uuid.UUID, quantity int) error

	// UpdateItemQuantity reports false when the line does not belong to the cart.
	UpdateItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (bool, error)

	// RemoveItem reports false when the line does not belong to the cart.
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error)

	Clear(ctx context.Context, cartID uuid.UUID) error

	// RemoveItemsTx deletes the listed lines within the provided transaction.
	RemoveItemsTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID, itemIDs []uuid.UUID) error
}

// ReservationRepository defines data access for reservations and reservation categories.
type ReservationRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	Create(ctx context.Context, reservation *model.Reservation) error
	Update(ctx context.Context, reservation *model.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]model.ReservationCategory, error)
	CreateCategory(ctx context.Context, category *model.ReservationCategory) error
}

// AccommodationRepository defines data access for accommodations.
type AccommodationRepository interface {
	List(ctx context.Context, limit, offset int) ([]model.Accommodation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Accommodation, error)
	Create(ctx context.Context, accommodation *model.Accommodation) error
	Update(ctx context.Context, accommodation *model.Accommodation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingRepository defines data access for accommodation bookings.
type BookingRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// LockAccommodation locks the accommodation row so overlapping bookings serialise.
	// Returns nil if the accommodation does not exist.
	LockAccommodation(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Accommodation, error)

	// HasOverlap reports whether a booking of the accommodation intersects [checkIn, checkOut).
	HasOverlap(ctx context.Context, tx pgx.Tx, accommodationID uuid.UUID, checkIn, checkOut time.Time) (bool, error)

	// Create inserts a booking within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
