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

// foodService implements FoodService.
type foodService struct {
	foodRepo       repository.FoodRepository
	restaurantRepo repository.RestaurantRepository
	logger         zerolog.Logger
}

// NewFoodService creates a new food service.
func NewFoodService(
	foodRepo repository.FoodRepository,
	restaurantRepo repository.RestaurantRepository,
	logger zerolog.Logger,
) FoodService {
	return &foodService{
		foodRepo:       foodRepo,
		restaurantRepo: restaurantRepo,
		logger:         logger.With().Str("service", "food").Logger(),
	}
}

// List retrieves foods with pagination, optionally for one restaurant.
func (s *foodService) List(ctx context.Context, restaurantID *uuid.UUID, limit, offset int) ([]model.Food, error) {
	limit, offset = normalizePage(limit, offset)

	foods, err := s.foodRepo.List(ctx, restaurantID, limit, offset)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list foods")
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}

	s.logger.Debug().Int("count", len(foods)).Msg("foods retrieved")
	return nonNil(foods), nil
}

func (s *foodService) Get(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	food, err := s.foodRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to get food")
		return nil, fmt.Errorf("failed to get food: %w", err)
	}
	if food == nil {
		return nil, model.ErrFoodNotFound
	}
	return food, nil
}

// Create requires the caller to run the target restaurant.
func (s *foodService) Create(ctx context.Context, caller auth.Principal, req *model.FoodRequest) (*model.Food, error) {
	if err := validPrice(req.Price); err != nil {
		return nil, err
	}
	if _, err := requireOwnerOrManager(ctx, s.restaurantRepo, caller, req.Restaurant); err != nil {
		return nil, err
	}

	food := &model.Food{
		ID:           uuid.New(),
		RestaurantID: req.Restaurant,
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		Description:  req.Description,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.foodRepo.Create(ctx, food); err != nil {
		s.logger.Error().Err(err).Str("restaurant_id", req.Restaurant.String()).Msg("failed to create food")
		return nil, fmt.Errorf("failed to create food: %w", err)
	}
	return food, nil
}

func (s *foodService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.FoodUpdateRequest) (*model.Food, error) {
	food, err := s.managed(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Price != nil {
		if err := validPrice(*req.Price); err != nil {
			return nil, err
		}
		food.Price = *req.Price
	}
	if req.Name != nil {
		food.Name = *req.Name
	}
	if req.Category != nil {
		food.Category = *req.Category
	}
	if req.Description != nil {
		food.Description = *req.Description
	}

	if err := s.foodRepo.Update(ctx, food); err != nil {
		s.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to update food")
		return nil, fmt.Errorf("failed to update food: %w", err)
	}
	return food, nil
}

func (s *foodService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	if _, err := s.managed(ctx, caller, id); err != nil {
		return err
	}

	if err := s.foodRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to delete food")
		return fmt.Errorf("failed to delete food: %w", err)
	}
	return nil
}

// managed returns the food when caller runs its restaurant.
func (s *foodService) managed(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Food, error) {
	food, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireOwnerOrManager(ctx, s.restaurantRepo, caller, food.RestaurantID); err != nil {
		return nil, err
	}
	return food, nil
}
