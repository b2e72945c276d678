package repository

import (
	"context"
	"errors"
	"fmt"

	"dinelt/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const restaurantSelect = `
	SELECT id, owner_id, name, address, city, country, phone_number, image, description, created_at
	FROM restaurants
`

type restaurantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRestaurantRepository creates a new PostgreSQL-backed restaurant repository.
func NewRestaurantRepository(pool *pgxpool.Pool, logger zerolog.Logger) RestaurantRepository {
	return &restaurantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "restaurant").Logger(),
	}
}

func (r *restaurantRepository) List(ctx context.Context, limit, offset int) ([]model.Restaurant, error) {
	rows, err := r.pool.Query(ctx, restaurantSelect+` ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query restaurants")
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}

	restaurants, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Restaurant, error) {
		rest, err := scanRestaurant(row)
		if err != nil {
			return model.Restaurant{}, err
		}
		return *rest, nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan restaurant rows")
		return nil, fmt.Errorf("failed to scan restaurants: %w", err)
	}

	return restaurants, nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error) {
	rest, err := scanRestaurant(r.pool.QueryRow(ctx, restaurantSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("restaurant_id", id.String()).Msg("restaurant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to query restaurant")
		return nil, fmt.Errorf("failed to query restaurant: %w", err)
	}
	return rest, nil
}

func (r *restaurantRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, owner_id, name, address, city, country, phone_number, image, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query, rest.ID, rest.OwnerID, rest.Name, rest.Address, rest.City,
		rest.Country, rest.PhoneNumber, rest.Image, rest.Description, rest.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", rest.ID.String()).Msg("failed to create restaurant")
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	r.logger.Debug().Str("restaurant_id", rest.ID.String()).Msg("restaurant created successfully")
	return nil
}

func (r *restaurantRepository) Update(ctx context.Context, rest *model.Restaurant) error {
	query := `
		UPDATE restaurants
		SET name = $2, address = $3, city = $4, country = $5, phone_number = $6, image = $7, description = $8
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, rest.ID, rest.Name, rest.Address, rest.City, rest.Country,
		rest.PhoneNumber, rest.Image, rest.Description)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", rest.ID.String()).Msg("failed to update restaurant")
		return fmt.Errorf("failed to update restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM restaurants WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", id.String()).Msg("failed to delete restaurant")
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}
	return nil
}

func (r *restaurantRepository) IsManager(ctx context.Context, restaurantID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM managers WHERE restaurant_id = $1 AND user_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, restaurantID, userID).Scan(&exists); err != nil {
		r.logger.Error().Err(err).
			Str("restaurant_id", restaurantID.String()).
			Str("user_id", userID.String()).
			Msg("failed to check manager")
		return false, fmt.Errorf("failed to check manager: %w", err)
	}
	return exists, nil
}

func (r *restaurantRepository) AddManager(ctx context.Context, m *model.Manager) error {
	query := `
		INSERT INTO managers (id, user_id, restaurant_id, date_assigned)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, m.ID, m.UserID, m.RestaurantID, m.DateAssigned)
	if err != nil {
		err = duplicateError(err)
		if !errors.Is(err, ErrDuplicate) {
			r.logger.Error().Err(err).Str("restaurant_id", m.RestaurantID.String()).Msg("failed to add manager")
		}
		return fmt.Errorf("failed to add manager: %w", err)
	}
	return nil
}

func (r *restaurantRepository) ListManagers(ctx context.Context, restaurantID uuid.UUID) ([]model.Manager, error) {
	query := `
		SELECT id, user_id, restaurant_id, date_assigned
		FROM managers
		WHERE restaurant_id = $1
		ORDER BY date_assigned
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to query managers")
		return nil, fmt.Errorf("failed to query managers: %w", err)
	}

	managers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Manager, error) {
		var m model.Manager
		err := row.Scan(&m.ID, &m.UserID, &m.RestaurantID, &m.DateAssigned)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan managers: %w", err)
	}
	return managers, nil
}

func (r *restaurantRepository) GetManager(ctx context.Context, id uuid.UUID) (*model.Manager, error) {
	query := `SELECT id, user_id, restaurant_id, date_assigned FROM managers WHERE id = $1`

	var m model.Manager
	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.UserID, &m.RestaurantID, &m.DateAssigned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("manager_id", id.String()).Msg("failed to query manager")
		return nil, fmt.Errorf("failed to query manager: %w", err)
	}
	return &m, nil
}

func (r *restaurantRepository) RemoveManager(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM managers WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("manager_id", id.String()).Msg("failed to remove manager")
		return fmt.Errorf("failed to remove manager: %w", err)
	}
	return nil
}

func (r *restaurantRepository) CreateReview(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO restaurant_reviews (id, user_id, restaurant_id, rating, review, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, review.ID, review.UserID, review.RestaurantID,
		review.Rating, review.Review, review.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", review.RestaurantID.String()).Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *restaurantRepository) ListReviews(ctx context.Context, restaurantID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT id, restaurant_id, user_id, rating, review, created_at
		FROM restaurant_reviews
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	reviews, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Review, error) {
		var rv model.Review
		err := row.Scan(&rv.ID, &rv.RestaurantID, &rv.UserID, &rv.Rating, &rv.Review, &rv.CreatedAt)
		return rv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reviews: %w", err)
	}
	return reviews, nil
}

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var rest model.Restaurant
	err := row.Scan(&rest.ID, &rest.OwnerID, &rest.Name, &rest.Address, &rest.City, &rest.Country,
		&rest.PhoneNumber, &rest.Image, &rest.Description, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}
