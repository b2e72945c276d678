package model

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can log in with email and password.
type User struct {
	ID              uuid.UUID `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FullName        string    `json:"full_name"`
	PhoneNumber     string    `json:"phone_number"`
	Country         string    `json:"country"`
	City            string    `json:"city"`
	Address         string    `json:"address"`
	PostalCode      string    `json:"postal_code"`
	Image           *string   `json:"image"`
	IsBusinessOwner bool      `json:"is_business_owner"`
	IsStaff         bool      `json:"-"`
	IsActive        bool      `json:"-"`
	DateJoined      time.Time `json:"date_joined"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,max=150"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	Password        string  `json:"password" validate:"required"`
	FullName        string  `json:"full_name" validate:"required,max=255"`
	PhoneNumber     string  `json:"phone_number" validate:"required,max=20"`
	Country         string  `json:"country" validate:"required,max=100"`
	City            string  `json:"city" validate:"required,max=100"`
	Address         string  `json:"address" validate:"required,max=255"`
	PostalCode      string  `json:"postal_code" validate:"required,max=20"`
	Image           *string `json:"image,omitempty" validate:"omitempty,max=255"`
	IsBusinessOwner bool    `json:"is_business_owner"`
}

// LoginRequest carries email + password credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges a refresh token for a new access token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// TokenPair is returned on successful login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AccessToken is returned on token refresh.
type AccessToken struct {
	Access string `json:"access"`
}
