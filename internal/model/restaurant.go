package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Restaurant is owned by a business owner and may delegate rights to managers.
type Restaurant struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	PhoneNumber string    `json:"phone_number"`
	Image       *string   `json:"image"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RestaurantRequest creates a restaurant.
type RestaurantRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Address     string  `json:"address" validate:"required,max=255"`
	City        string  `json:"city" validate:"required,max=100"`
	Country     string  `json:"country" validate:"required,max=100"`
	PhoneNumber string  `json:"phone_number" validate:"required,max=20"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=255"`
	Description string  `json:"description"`
}

// RestaurantUpdateRequest updates a restaurant. Nil fields are left unchanged.
type RestaurantUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address     *string `json:"address,omitempty" validate:"omitempty,min=1,max=255"`
	City        *string `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Country     *string `json:"country,omitempty" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,min=1,max=20"`
	Image       *string `json:"image,omitempty" validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
}

// Manager grants a non-owner user mutation rights over a restaurant's resources.
type Manager struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user"`
	RestaurantID uuid.UUID `json:"restaurant"`
	DateAssigned time.Time `json:"date_assigned"`
}

// ManagerRequest assigns a manager.
type ManagerRequest struct {
	User uuid.UUID `json:"user" validate:"required"`
}

// Review is a user's rating of a restaurant.
type Review struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant"`
	UserID       uuid.UUID `json:"user"`
	Rating       int       `json:"rating"`
	Review       string    `json:"review"`
	CreatedAt    time.Time `json:"created_at"`
}

// ReviewRequest creates a review.
type ReviewRequest struct {
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Review string `json:"review" validate:"required,max=255"`
}

// FoodCategory enumerates menu sections.
type FoodCategory string

const (
	CategoryAppetizer  FoodCategory = "appetizer"
	CategoryMainCourse FoodCategory = "main_course"
	CategoryDessert    FoodCategory = "dessert"
	CategoryBeverage   FoodCategory = "beverage"
)

// Food is a priced menu item of a restaurant.
type Food struct {
	ID           uuid.UUID       `json:"id"`
	RestaurantID uuid.UUID       `json:"restaurant"`
	Name         string          `json:"name"`
	Category     FoodCategory    `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// FoodRequest creates a food item.
type FoodRequest struct {
	Restaurant  uuid.UUID       `json:"restaurant" validate:"required"`
	Name        string          `json:"name" validate:"required,max=255"`
	Category    FoodCategory    `json:"category" validate:"required,oneof=appetizer main_course dessert beverage"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// FoodUpdateRequest updates a food item. Nil fields are left unchanged.
type FoodUpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category    *FoodCategory    `json:"category,omitempty" validate:"omitempty,oneof=appetizer main_course dessert beverage"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Description *string          `json:"description,omitempty"`
}

// maxAmount is the first value that does not fit a NUMERIC(10,2) column.
var maxAmount = decimal.New(1, 8)

// ValidPrice reports whether p is a non-negative amount with at most two decimal places.
func ValidPrice(p decimal.Decimal) bool {
	return !p.IsNegative() && p.Equal(p.Round(2)) && ValidAmount(p)
}

// ValidAmount reports whether a computed total can be stored.
func ValidAmount(total decimal.Decimal) bool {
	return total.LessThan(maxAmount)
}
