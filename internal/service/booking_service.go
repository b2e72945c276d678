package service

import (
	"context"
	"fmt"

	"dinelt/internal/auth"
	"dinelt/internal/events"
	"dinelt/internal/metrics"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// bookingService implements BookingService.
type bookingService struct {
	bookingRepo repository.BookingRepository
	publisher   events.Publisher
	now         clock
	logger      zerolog.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		logger:      logger.With().Str("service", "booking").Logger(),
	}
}

// Create locks the accommodation row, rejects overlapping stays and prices
// the booking at nights times the nightly rate.
func (s *bookingService) Create(ctx context.Context, caller auth.Principal, req *model.BookingRequest) (*model.Booking, error) {
	checkIn, checkOut := req.CheckInDate.UTC(), req.CheckOutDate.UTC()
	if !checkOut.After(checkIn) {
		return nil, model.ErrInvalidDateRange
	}
	if req.NumberOfGuests < 1 {
		return nil, model.NewValidationError("number_of_guests must be at least 1")
	}

	tx, err := s.bookingRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	accommodation, err := s.bookingRepo.LockAccommodation(ctx, tx, req.Accommodation)
	if err != nil {
		s.logger.Error().Err(err).Str("accommodation_id", req.Accommodation.String()).Msg("failed to lock accommodation")
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if accommodation == nil {
		err = model.ErrAccommodationNotFound
		return nil, err
	}

	var overlap bool
	overlap, err = s.bookingRepo.HasOverlap(ctx, tx, accommodation.ID, checkIn, checkOut)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if overlap {
		s.logger.Debug().
			Str("accommodation_id", accommodation.ID.String()).
			Time("check_in", checkIn).
			Time("check_out", checkOut).
			Msg("booking overlaps an existing stay")
		err = model.ErrBookingOverlap
		return nil, err
	}

	nights := model.Nights(checkIn, checkOut)
	total := model.BookingTotal(accommodation.PricePerNight, nights)
	if err = validTotal(total); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ID:              uuid.New(),
		UserID:          caller.UserID,
		AccommodationID: accommodation.ID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
		Nights:          nights,
		TotalPrice:      total,
		CreatedAt:       s.now.now(),
	}

	if err = s.bookingRepo.Create(ctx, tx, booking); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to create booking")
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("booking_id", booking.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.Info().
		Str("booking_id", booking.ID.String()).
		Int("nights", nights).
		Str("total_price", booking.TotalPrice.String()).
		Msg("booking created")

	metrics.RecordBookingCreated()
	publish(ctx, s.publisher, s.logger, events.New(events.BookingCreated, accommodation.ID.String(), map[string]any{
		"booking_id":       booking.ID,
		"accommodation_id": accommodation.ID,
		"user_id":          caller.UserID,
		"check_in_date":    checkIn,
		"check_out_date":   checkOut,
		"total_price":      booking.TotalPrice,
	}))

	return booking, nil
}

func (s *bookingService) List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Booking, error) {
	limit, offset = normalizePage(limit, offset)

	bookings, err := s.bookingRepo.ListByUser(ctx, caller.UserID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to list bookings")
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return nonNil(bookings), nil
}

func (s *bookingService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("booking_id", id.String()).Msg("failed to get booking")
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	if booking == nil || booking.UserID != caller.UserID {
		return nil, model.ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("booking_id", id.String()).Msg("failed to cancel booking")
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.logger.Info().Str("booking_id", id.String()).Msg("booking cancelled")
	return nil
}
