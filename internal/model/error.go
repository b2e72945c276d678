package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON             = "INVALID_JSON"
	ErrCodeValidationFailed        = "VALIDATION_FAILED"
	ErrCodeNotFound                = "NOT_FOUND"
	ErrCodeUnauthorised            = "UNAUTHORIZED"
	ErrCodeForbidden               = "FORBIDDEN"
	ErrCodeConflict                = "CONFLICT"
	ErrCodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeRateLimited             = "RATE_LIMITED"
	ErrCodeInternalError           = "INTERNAL_ERROR"
)

// DomainError is a business-logic failure that maps onto an API error code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError wraps a field level validation message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed, message)
}

// Authentication and authorisation
var (
	ErrUnauthorised       = NewDomainError(ErrCodeUnauthorised, "Authentication credentials were not provided")
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorised, "Invalid email or password")
	ErrAccountDisabled    = NewDomainError(ErrCodeUnauthorised, "User account is disabled")
	ErrInvalidToken       = NewDomainError(ErrCodeUnauthorised, "Token is invalid or expired")
	ErrForbidden          = NewDomainError(ErrCodeForbidden, "You do not have permission to perform this action")
	ErrNotBusinessOwner   = NewDomainError(ErrCodeForbidden, "You must be a business owner to perform this action")
	ErrRateLimited        = NewDomainError(ErrCodeRateLimited, "Too many requests")
)

// Accounts and social
var (
	ErrEmailTaken       = NewDomainError(ErrCodeConflict, "A user with this email already exists.")
	ErrUsernameTaken    = NewDomainError(ErrCodeConflict, "A user with this username already exists.")
	ErrUserNotFound     = NewDomainError(ErrCodeNotFound, "User not found")
	ErrProfileNotFound  = NewDomainError(ErrCodeNotFound, "Profile not found")
	ErrSelfFollow       = NewDomainError(ErrCodeValidationFailed, "You cannot follow yourself")
	ErrPostNotFound     = NewDomainError(ErrCodeNotFound, "Post not found")
	ErrStoryNotFound    = NewDomainError(ErrCodeNotFound, "Story not found")
	ErrStoryExpired     = NewDomainError(ErrCodeNotFound, "Story has expired")
	ErrManagerNotFound  = NewDomainError(ErrCodeNotFound, "Manager not found")
	ErrAlreadyManager   = NewDomainError(ErrCodeConflict, "User is already a manager of this restaurant")
	ErrOwnerAsManager   = NewDomainError(ErrCodeValidationFailed, "The restaurant owner cannot be assigned as a manager")
	ErrRestaurantNeeded = NewDomainError(ErrCodeForbidden, "Restaurant must be provided for accommodation creation.")
)

// Catalogue, orders and bookings
var (
	ErrRestaurantNotFound    = NewDomainError(ErrCodeNotFound, "Restaurant not found")
	ErrFoodNotFound          = NewDomainError(ErrCodeNotFound, "One or more food items not found")
	ErrFoodRestaurant        = NewDomainError(ErrCodeValidationFailed, "All food items must belong to the order's restaurant")
	ErrInvalidQuantity       = NewDomainError(ErrCodeValidationFailed, "Quantity must be greater than zero")
	ErrQuantityTooLarge      = NewDomainError(ErrCodeValidationFailed, "Quantity must be at most 1000")
	ErrTotalTooLarge         = NewDomainError(ErrCodeValidationFailed, "Total price must be less than 100000000")
	ErrInvalidPrice          = NewDomainError(ErrCodeValidationFailed, "Price must be a non-negative amount with at most 2 decimal places")
	ErrOrderNotFound         = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrOrderNotPending       = NewDomainError(ErrCodeInvalidStatusTransition, "Only pending orders can be modified")
	ErrInvalidTransition     = NewDomainError(ErrCodeInvalidStatusTransition, "Order status transition is not allowed")
	ErrCartItemNotFound      = NewDomainError(ErrCodeNotFound, "Cart item not found")
	ErrEmptyCart             = NewDomainError(ErrCodeValidationFailed, "Cart is empty")
	ErrReservationNotFound   = NewDomainError(ErrCodeNotFound, "Reservation not found")
	ErrReservationInPast     = NewDomainError(ErrCodeValidationFailed, "Reservation date must be in the future")
	ErrAccommodationNotFound = NewDomainError(ErrCodeNotFound, "Accommodation does not exist.")
	ErrBookingNotFound       = NewDomainError(ErrCodeNotFound, "Booking not found")
	ErrInvalidDateRange      = NewDomainError(ErrCodeValidationFailed, "Check-out date must be after check-in date")
	ErrBookingOverlap        = NewDomainError(ErrCodeConflict, "Accommodation is already booked for the requested dates")
)
