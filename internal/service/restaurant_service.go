package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinelt/internal/auth"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// restaurantService implements RestaurantService.
type restaurantService struct {
	restaurantRepo repository.RestaurantRepository
	userRepo       repository.UserRepository
	logger         zerolog.Logger
}

// NewRestaurantService creates a new restaurant service.
func NewRestaurantService(
	restaurantRepo repository.RestaurantRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) RestaurantService {
	return &restaurantService{
		restaurantRepo: restaurantRepo,
		userRepo:       userRepo,
		logger:         logger.With().Str("service", "restaurant").Logger(),
	}
}

func (s *restaurantService) List(ctx context.Context, limit, offset int) ([]model.Restaurant, error) {
	limit, offset = normalizePage(limit, offset)

	restaurants, err := s.restaurantRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to list restaurants")
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return nonNil(restaurants), nil
}

func (s *restaurantService) Get(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to get restaurant")
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}
	return restaurant, nil
}

// Create makes the caller the owner. Only business owners and staff may create.
func (s *restaurantService) Create(ctx context.Context, caller auth.Principal, req *model.RestaurantRequest) (*model.Restaurant, error) {
	if !caller.IsBusinessOwner && !caller.IsStaff {
		return nil, model.ErrNotBusinessOwner
	}

	restaurant := &model.Restaurant{
		ID:          uuid.New(),
		OwnerID:     caller.UserID,
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
		Image:       req.Image,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		s.logger.Error().Err(err).Str("owner_id", caller.UserID.String()).Msg("failed to create restaurant")
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.logger.Info().
		Str("restaurant_id", restaurant.ID.String()).
		Str("owner_id", caller.UserID.String()).
		Msg("restaurant created")

	return restaurant, nil
}

func (s *restaurantService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.RestaurantUpdateRequest) (*model.Restaurant, error) {
	restaurant, err := s.ownedOrStaff(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.City != nil {
		restaurant.City = *req.City
	}
	if req.Country != nil {
		restaurant.Country = *req.Country
	}
	if req.PhoneNumber != nil {
		restaurant.PhoneNumber = *req.PhoneNumber
	}
	if req.Image != nil {
		restaurant.Image = req.Image
	}
	if req.Description != nil {
		restaurant.Description = *req.Description
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to update restaurant")
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *restaurantService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	if _, err := s.ownedOrStaff(ctx, caller, id); err != nil {
		return err
	}

	if err := s.restaurantRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to delete restaurant")
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	s.logger.Info().Str("restaurant_id", id.String()).Msg("restaurant deleted")
	return nil
}

func (s *restaurantService) ListManagers(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID) ([]model.Manager, error) {
	if _, err := s.ownedByBusinessOwner(ctx, caller, restaurantID); err != nil {
		return nil, err
	}

	managers, err := s.restaurantRepo.ListManagers(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to list managers")
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	return nonNil(managers), nil
}

func (s *restaurantService) AddManager(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ManagerRequest) (*model.Manager, error) {
	restaurant, err := s.ownedByBusinessOwner(ctx, caller, restaurantID)
	if err != nil {
		return nil, err
	}

	if req.User == restaurant.OwnerID {
		return nil, model.ErrOwnerAsManager
	}

	user, err := s.userRepo.GetByID(ctx, req.User)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", req.User.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to add manager: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	manager := &model.Manager{
		ID:           uuid.New(),
		UserID:       user.ID,
		RestaurantID: restaurantID,
		DateAssigned: time.Now().UTC(),
	}
	if err := s.restaurantRepo.AddManager(ctx, manager); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.ErrAlreadyManager
		}
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to add manager")
		return nil, fmt.Errorf("failed to add manager: %w", err)
	}

	s.logger.Info().
		Str("restaurant_id", restaurantID.String()).
		Str("user_id", user.ID.String()).
		Msg("manager assigned")

	return manager, nil
}

func (s *restaurantService) RemoveManager(ctx context.Context, caller auth.Principal, restaurantID, managerID uuid.UUID) error {
	if _, err := s.ownedByBusinessOwner(ctx, caller, restaurantID); err != nil {
		return err
	}

	manager, err := s.restaurantRepo.GetManager(ctx, managerID)
	if err != nil {
		s.logger.Error().Err(err).Str("manager_id", managerID.String()).Msg("failed to get manager")
		return fmt.Errorf("failed to remove manager: %w", err)
	}
	if manager == nil || manager.RestaurantID != restaurantID {
		return model.ErrManagerNotFound
	}

	if err := s.restaurantRepo.RemoveManager(ctx, managerID); err != nil {
		s.logger.Error().Err(err).Str("manager_id", managerID.String()).Msg("failed to remove manager")
		return fmt.Errorf("failed to remove manager: %w", err)
	}
	return nil
}

func (s *restaurantService) ListReviews(ctx context.Context, restaurantID uuid.UUID) ([]model.Review, error) {
	if _, err := s.Get(ctx, restaurantID); err != nil {
		return nil, err
	}

	reviews, err := s.restaurantRepo.ListReviews(ctx, restaurantID)
	if err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to list reviews")
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return nonNil(reviews), nil
}

func (s *restaurantService) AddReview(ctx context.Context, caller auth.Principal, restaurantID uuid.UUID, req *model.ReviewRequest) (*model.Review, error) {
	if _, err := s.Get(ctx, restaurantID); err != nil {
		return nil, err
	}

	review := &model.Review{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		UserID:       caller.UserID,
		Rating:       req.Rating,
		Review:       req.Review,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.restaurantRepo.CreateReview(ctx, review); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to create review")
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// ownedOrStaff allows the owner and staff.
func (s *restaurantService) ownedOrStaff(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != caller.UserID && !caller.IsStaff {
		return nil, model.ErrForbidden
	}
	return restaurant, nil
}

// ownedByBusinessOwner allows only the owner, who must still be a business owner.
func (s *restaurantService) ownedByBusinessOwner(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Restaurant, error) {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurant.OwnerID != caller.UserID {
		return nil, model.ErrForbidden
	}
	if !caller.IsBusinessOwner {
		return nil, model.ErrNotBusinessOwner
	}
	return restaurant, nil
}
