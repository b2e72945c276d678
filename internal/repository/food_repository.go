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

const foodSelect = `
	SELECT id, restaurant_id, name, category, price, description, created_at
	FROM foods
`

// foodRepository implements the FoodRepository interface using PostgreSQL.
type foodRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFoodRepository creates a new PostgreSQL-backed food repository.
func NewFoodRepository(pool *pgxpool.Pool, logger zerolog.Logger) FoodRepository {
	return &foodRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "food").Logger(),
	}
}

// List retrieves foods with pagination support, optionally for a single restaurant.
func (r *foodRepository) List(ctx context.Context, restaurantID *uuid.UUID, limit, offset int) ([]model.Food, error) {
	query := foodSelect + `
		WHERE ($1::uuid IS NULL OR restaurant_id = $1)
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, restaurantID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query foods")
		return nil, fmt.Errorf("failed to query foods: %w", err)
	}

	return r.collect(rows)
}

// GetByID retrieves a single food by its ID.
func (r *foodRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Food, error) {
	f, err := scanFood(r.pool.QueryRow(ctx, foodSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("food_id", id.String()).Msg("food not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to query food")
		return nil, fmt.Errorf("failed to query food: %w", err)
	}

	return f, nil
}

// GetByIDs retrieves multiple foods by their IDs.
func (r *foodRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Food, error) {
	if len(ids) == 0 {
		return []model.Food{}, nil
	}

	rows, err := r.pool.Query(ctx, foodSelect+` WHERE id = ANY($1::uuid[]) ORDER BY name`, uuidStrings(ids))
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query foods by IDs")
		return nil, fmt.Errorf("failed to query foods by IDs: %w", err)
	}

	return r.collect(rows)
}

func (r *foodRepository) Create(ctx context.Context, food *model.Food) error {
	query := `
		INSERT INTO foods (id, restaurant_id, name, category, price, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query, food.ID, food.RestaurantID, food.Name, food.Category,
		food.Price, food.Description, food.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", food.ID.String()).Msg("failed to create food")
		return fmt.Errorf("failed to create food: %w", err)
	}

	r.logger.Debug().Str("food_id", food.ID.String()).Msg("food created successfully")
	return nil
}

func (r *foodRepository) Update(ctx context.Context, food *model.Food) error {
	query := `
		UPDATE foods
		SET name = $2, category = $3, price = $4, description = $5
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, food.ID, food.Name, food.Category, food.Price, food.Description)
	if err != nil {
		r.logger.Error().Err(err).Str("food_id", food.ID.String()).Msg("failed to update food")
		return fmt.Errorf("failed to update food: %w", err)
	}
	return nil
}

func (r *foodRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM foods WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("food_id", id.String()).Msg("failed to delete food")
		return fmt.Errorf("failed to delete food: %w", err)
	}
	return nil
}

func (r *foodRepository) collect(rows pgx.Rows) ([]model.Food, error) {
	defer rows.Close()

	foods := []model.Food{}
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan food row")
			return nil, fmt.Errorf("failed to scan food: %w", err)
		}
		foods = append(foods, *f)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating food rows")
		return nil, fmt.Errorf("error iterating foods: %w", err)
	}

	return foods, nil
}

func scanFood(row pgx.Row) (*model.Food, error) {
	var f model.Food
	err := row.Scan(&f.ID, &f.RestaurantID, &f.Name, &f.Category, &f.Price, &f.Description, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
