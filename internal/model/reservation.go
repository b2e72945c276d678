package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationType enumerates bookable meeting spaces.
type ReservationType string

const (
	ReservationConferenceRoom ReservationType = "conference_room"
	ReservationMeetingTable   ReservationType = "meeting_table"
)

// Reservation holds a meeting space at a restaurant for a user.
type Reservation struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user"`
	RestaurantID    *uuid.UUID      `json:"restaurant"`
	ReservationDate time.Time       `json:"reservation_date"`
	NumberOfPeople  int             `json:"number_of_people"`
	SpecialRequests string          `json:"special_requests"`
	ReservationType ReservationType `json:"reservation_type"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ReservationRequest creates a reservation.
type ReservationRequest struct {
	Restaurant      *uuid.UUID      `json:"restaurant,omitempty"`
	ReservationDate time.Time       `json:"reservation_date" validate:"required"`
	NumberOfPeople  int             `json:"number_of_people" validate:"min=1"`
	SpecialRequests string          `json:"special_requests"`
	ReservationType ReservationType `json:"reservation_type" validate:"required,oneof=conference_room meeting_table"`
}

// ReservationUpdateRequest updates a reservation. Nil fields are left unchanged.
type ReservationUpdateRequest struct {
	ReservationDate *time.Time       `json:"reservation_date,omitempty"`
	NumberOfPeople  *int             `json:"number_of_people,omitempty" validate:"omitempty,min=1"`
	SpecialRequests *string          `json:"special_requests,omitempty"`
	ReservationType *ReservationType `json:"reservation_type,omitempty" validate:"omitempty,oneof=conference_room meeting_table"`
}

// ReservationCategory is a kind of bookable space a restaurant offers.
type ReservationCategory struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	ReservationType ReservationType `json:"reservation_type"`
	RestaurantID    uuid.UUID       `json:"restaurant"`
}

// ReservationCategoryRequest creates a reservation category.
type ReservationCategoryRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	ReservationType ReservationType `json:"reservation_type" validate:"required,oneof=conference_room meeting_table"`
}

// Accommodation is a bookable lodging, optionally attached to a restaurant.
type Accommodation struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Image         *string         `json:"image"`
	RestaurantID  *uuid.UUID      `json:"restaurant"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccommodationRequest creates an accommodation.
type AccommodationRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	Address       string          `json:"address" validate:"required,max=255"`
	City          string          `json:"city" validate:"required,max=100"`
	Country       string          `json:"country" validate:"required,max=100"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Image         *string         `json:"image,omitempty" validate:"omitempty,max=255"`
	Restaurant    *uuid.UUID      `json:"restaurant,omitempty"`
}

// AccommodationUpdateRequest updates an accommodation. Nil fields are left unchanged.
type AccommodationUpdateRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address       *string          `json:"address,omitempty" validate:"omitempty,min=1,max=255"`
	City          *string          `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Country       *string          `json:"country,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description,omitempty"`
	PricePerNight *decimal.Decimal `json:"price_per_night,omitempty"`
	Image         *string          `json:"image,omitempty" validate:"omitempty,max=255"`
}

// Booking holds an accommodation for a user between two dates.
type Booking struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user"`
	AccommodationID uuid.UUID       `json:"accommodation"`
	CheckInDate     time.Time       `json:"check_in_date"`
	CheckOutDate    time.Time       `json:"check_out_date"`
	NumberOfGuests  int             `json:"number_of_guests"`
	SpecialRequests string          `json:"special_requests"`
	Nights          int             `json:"nights"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BookingRequest creates a booking.
type BookingRequest struct {
	Accommodation   uuid.UUID `json:"accommodation" validate:"required"`
	CheckInDate     time.Time `json:"check_in_date" validate:"required"`
	CheckOutDate    time.Time `json:"check_out_date" validate:"required"`
	NumberOfGuests  int       `json:"number_of_guests" validate:"min=1"`
	SpecialRequests string    `json:"special_requests"`
}

// Nights counts started nights between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	if !checkOut.After(checkIn) {
		return 0
	}
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

// BookingTotal is nights times the nightly price.
func BookingTotal(pricePerNight decimal.Decimal, nights int) decimal.Decimal {
	return pricePerNight.Mul(decimal.NewFromInt(int64(nights))).Round(2)
}
