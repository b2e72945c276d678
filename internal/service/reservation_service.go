package service

import (
	"context"
	"fmt"

	"dinelt/internal/auth"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reservationService implements ReservationService.
type reservationService struct {
	reservationRepo repository.ReservationRepository
	restaurantRepo  repository.RestaurantRepository
	now             clock
	logger          zerolog.Logger
}

// NewReservationService creates a new reservation service.
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	restaurantRepo repository.RestaurantRepository,
	logger zerolog.Logger,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		restaurantRepo:  restaurantRepo,
		logger:          logger.With().Str("service", "reservation").Logger(),
	}
}

func (s *reservationService) List(ctx context.Context, caller auth.Principal, limit, offset int) ([]model.Reservation, error) {
	limit, offset = normalizePage(limit, offset)

	reservations, err := s.reservationRepo.ListByUser(ctx, caller.UserID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to list reservations")
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return nonNil(reservations), nil
}

func (s *reservationService) Create(ctx context.Context, caller auth.Principal, req *model.ReservationRequest) (*model.Reservation, error) {
	now := s.now.now()
	if !req.ReservationDate.After(now) {
		return nil, model.ErrReservationInPast
	}
	if req.NumberOfPeople < 1 {
		return nil, model.NewValidationError("number_of_people must be at least 1")
	}

	if req.Restaurant != nil {
		restaurant, err := s.restaurantRepo.GetByID(ctx, *req.Restaurant)
		if err != nil {
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}
		if restaurant == nil {
			return nil, model.ErrRestaurantNotFound
		}
	}

	reservation := &model.Reservation{
		ID:              uuid.New(),
		UserID:          caller.UserID,
		RestaurantID:    req.Restaurant,
		ReservationDate: req.ReservationDate.UTC(),
		NumberOfPeople:  req.NumberOfPeople,
		SpecialRequests: req.SpecialRequests,
		ReservationType: req.ReservationType,
		CreatedAt:       now,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to create reservation")
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.logger.Info().
		Str("reservation_id", reservation.ID.String()).
		Time("reservation_date", reservation.ReservationDate).
		Msg("reservation created")

	return reservation, nil
}

func (s *reservationService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Reservation, error) {
	return s.owned(ctx, caller, id)
}

func (s *reservationService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.ReservationUpdateRequest) (*model.Reservation, error) {
	reservation, err := s.owned(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.ReservationDate != nil {
		if !req.ReservationDate.After(s.now.now()) {
			return nil, model.ErrReservationInPast
		}
		reservation.ReservationDate = req.ReservationDate.UTC()
	}
	if req.NumberOfPeople != nil {
		if *req.NumberOfPeople < 1 {
			return nil, model.NewValidationError("number_of_people must be at least 1")
		}
		reservation.NumberOfPeople = *req.NumberOfPeople
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = *req.SpecialRequests
	}
	if req.ReservationType != nil {
		reservation.ReservationType = *req.ReservationType
	}

	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		s.logger.Error().Err(err).Str("reservation_id", id.String()).Msg("failed to update reservation")
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}
	return reservation, nil
}

func (s *reservationService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	if _, err := s.owned(ctx, caller, id); err != nil {
		return err
	}

	if err := s.reservationRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("reservation_id", id.String()).Msg("failed to delete reservation")
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func (s *reservationService) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]model.ReservationCategory, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation categories: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}

	categories, err := s.reservationRepo.ListCategories(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to list reservation categories")
		return nil, fmt.Errorf("failed to list reservation categories: %w", err)
	}
	return nonNil(categories), nil
}

func (s *reservationService) CreateCategory(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ReservationCategoryRequest) (*model.ReservationCategory, error) {
	if _, err := requireOwnerOrManager(ctx, s.restaurantRepo, caller, restaurantID); err != nil {
		return nil, err
	}

	category := &model.ReservationCategory{
		ID:              uuid.New(),
		Name:            req.Name,
		ReservationType: req.ReservationType,
		RestaurantID:    restaurantID,
	}
	if err := s.reservationRepo.CreateCategory(ctx, category); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to create reservation category")
		return nil, fmt.Errorf("failed to create reservation category: %w", err)
	}
	return category, nil
}

// owned returns the reservation only when it belongs to caller.
func (s *reservationService) owned(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("reservation_id", id.String()).Msg("failed to get reservation")
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if reservation == nil || reservation.UserID != caller.UserID {
		return nil, model.ErrReservationNotFound
	}
	return reservation, nil
}
