package service

import (
	"context"
	"fmt"
	"time"

	"dinelt/internal/auth"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// accommodationService implements AccommodationService.
type accommodationService struct {
	accommodationRepo repository.AccommodationRepository
	restaurantRepo    repository.RestaurantRepository
	logger            zerolog.Logger
}

// NewAccommodationService creates a new accommodation service.
func NewAccommodationService(
	accommodationRepo repository.AccommodationRepository,
	restaurantRepo repository.RestaurantRepository,
	logger zerolog.Logger,
) AccommodationService {
	return &accommodationService{
		accommodationRepo: accommodationRepo,
		restaurantRepo:    restaurantRepo,
		logger:            logger.With().Str("service", "accommodation").Logger(),
	}
}

func (s *accommodationService) List(ctx context.Context, limit, offset int) ([]model.Accommodation, error) {
	limit, offset = normalizePage(limit, offset)

	accommodations, err := s.accommodationRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list accommodations")
		return nil, fmt.Errorf("failed to list accommodations: %w", err)
	}
	return nonNil(accommodations), nil
}

func (s *accommodationService) Get(ctx context.Context, id uuid.UUID) (*model.Accommodation, error) {
	accommodation, err := s.accommodationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("accommodation_id", id.String()).Msg("failed to get accommodation")
		return nil, fmt.Errorf("failed to get accommodation: %w", err)
	}
	if accommodation == nil {
		return nil, model.ErrAccommodationNotFound
	}
	return accommodation, nil
}

// Create requires a restaurant that the caller owns or manages.
func (s *accommodationService) Create(ctx context.Context, caller auth.Principal, req *model.AccommodationRequest) (*model.Accommodation, error) {
	if req.Restaurant == nil {
		return nil, model.ErrRestaurantNeeded
	}
	if err := validPrice(req.PricePerNight); err != nil {
		return nil, err
	}
	if _, err := requireOwnerOrManager(ctx, s.restaurantRepo, caller, *req.Restaurant); err != nil {
		return nil, err
	}

	accommodation := &model.Accommodation{
		ID:            uuid.New(),
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Image:         req.Image,
		RestaurantID:  req.Restaurant,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.accommodationRepo.Create(ctx, accommodation); err != nil {
		s.logger.Error().Err(err).Msg("failed to create accommodation")
		return nil, fmt.Errorf("failed to create accommodation: %w", err)
	}
	return accommodation, nil
}

func (s *accommodationService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.AccommodationUpdateRequest) (*model.Accommodation, error) {
	accommodation, err := s.managed(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.PricePerNight != nil {
		if err := validPrice(*req.PricePerNight); err != nil {
			return nil, err
		}
		accommodation.PricePerNight = *req.PricePerNight
	}
	if req.Name != nil {
		accommodation.Name = *req.Name
	}
	if req.Address != nil {
		accommodation.Address = *req.Address
	}
	if req.City != nil {
		accommodation.City = *req.City
	}
	if req.Country != nil {
		accommodation.Country = *req.Country
	}
	if req.Description != nil {
		accommodation.Description = *req.Description
	}
	if req.Image != nil {
		accommodation.Image = req.Image
	}

	if err := s.accommodationRepo.Update(ctx, accommodation); err != nil {
		s.logger.Error().Err(err).Str("accommodation_id", id.String()).Msg("failed to update accommodation")
		return nil, fmt.Errorf("failed to update accommodation: %w", err)
	}
	return accommodation, nil
}

func (s *accommodationService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	if _, err := s.managed(ctx, caller, id); err != nil {
		return err
	}

	if err := s.accommodationRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("accommodation_id", id.String()).Msg("failed to delete accommodation")
		return fmt.Errorf("failed to delete accommodation: %w", err)
	}
	return nil
}

// managed returns the accommodation when caller runs its restaurant. An
// accommodation without a restaurant can only be changed by staff.
func (s *accommodationService) managed(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Accommodation, error) {
	accommodation, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if accommodation.RestaurantID == nil {
		if !caller.IsStaff {
			return nil, model.ErrForbidden
		}
		return accommodation, nil
	}

	if _, err := requireOwnerOrManager(ctx, s.restaurantRepo, caller, *accommodation.RestaurantID); err != nil {
		return nil, err
	}
	return accommodation, nil
}
