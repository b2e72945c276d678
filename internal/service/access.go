package service

import (
	"context"
	"fmt"

	"dinelt/internal/auth"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
)

// requireOwnerOrManager loads the restaurant and checks that caller owns it
// or holds a manager record for it.
func requireOwnerOrManager(
	ctx context.Context,
	restaurants repository.RestaurantRepository,
	caller auth.Principal,
	restaurantID uuid.UUID,
) (*model.Restaurant, error) {
	restaurant, err := restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}
	if restaurant == nil {
		return nil, model.ErrRestaurantNotFound
	}

	if restaurant.OwnerID == caller.UserID {
		return restaurant, nil
	}

	ok, err := restaurants.IsManager(ctx, restaurantID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check manager: %w", err)
	}
	if !ok {
		return nil, model.ErrForbidden
	}
	return restaurant, nil
}

// isOwnerOrManager is requireOwnerOrManager for a restaurant that is already loaded.
func isOwnerOrManager(
	ctx context.Context,
	restaurants repository.RestaurantRepository,
	caller auth.Principal,
	restaurant *model.Restaurant,
) (bool, error) {
	if restaurant.OwnerID == caller.UserID {
		return true, nil
	}
	ok, err := restaurants.IsManager(ctx, restaurant.ID, caller.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to check manager: %w", err)
	}
	return ok, nil
}
