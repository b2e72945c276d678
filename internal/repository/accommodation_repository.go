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

const accommodationSelect = `
	SELECT id, name, address, city, country, description, price_per_night, image, restaurant_id, created_at
	FROM accommodations
`

type accommodationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAccommodationRepository creates a new PostgreSQL-backed accommodation repository.
func NewAccommodationRepository(pool *pgxpool.Pool, logger zerolog.Logger) AccommodationRepository {
	return &accommodationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "accommodation").Logger(),
	}
}

func (r *accommodationRepository) List(ctx context.Context, limit, offset int) ([]model.Accommodation, error) {
	rows, err := r.pool.Query(ctx, accommodationSelect+` ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query accommodations")
		return nil, fmt.Errorf("failed to query accommodations: %w", err)
	}

	accommodations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Accommodation, error) {
		a, err := scanAccommodation(row)
		if err != nil {
			return model.Accommodation{}, err
		}
		return *a, nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan accommodation rows")
		return nil, fmt.Errorf("failed to scan accommodations: %w", err)
	}

	return accommodations, nil
}

func (r *accommodationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Accommodation, error) {
	return getAccommodation(ctx, r.pool, r.logger, accommodationSelect+` WHERE id = $1`, id)
}

func (r *accommodationRepository) Create(ctx context.Context, a *model.Accommodation) error {
	query := `
		INSERT INTO accommodations (id, name, address, city, country, description, price_per_night,
			image, restaurant_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Address, a.City, a.Country, a.Description,
		a.PricePerNight, a.Image, a.RestaurantID, a.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("accommodation_id", a.ID.String()).Msg("failed to create accommodation")
		return fmt.Errorf("failed to create accommodation: %w", err)
	}
	return nil
}

func (r *accommodationRepository) Update(ctx context.Context, a *model.Accommodation) error {
	query := `
		UPDATE accommodations
		SET name = $2, address = $3, city = $4, country = $5, description = $6, price_per_night = $7, image = $8
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, a.ID, a.Name, a.Address, a.City, a.Country, a.Description,
		a.PricePerNight, a.Image)
	if err != nil {
		r.logger.Error().Err(err).Str("accommodation_id", a.ID.String()).Msg("failed to update accommodation")
		return fmt.Errorf("failed to update accommodation: %w", err)
	}
	return nil
}

func (r *accommodationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM accommodations WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("accommodation_id", id.String()).Msg("failed to delete accommodation")
		return fmt.Errorf("failed to delete accommodation: %w", err)
	}
	return nil
}

func getAccommodation(ctx context.Context, q querier, logger zerolog.Logger, query string, id uuid.UUID) (*model.Accommodation, error) {
	a, err := scanAccommodation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Str("accommodation_id", id.String()).Msg("failed to query accommodation")
		return nil, fmt.Errorf("failed to query accommodation: %w", err)
	}
	return a, nil
}

func scanAccommodation(row pgx.Row) (*model.Accommodation, error) {
	var a model.Accommodation
	err := row.Scan(&a.ID, &a.Name, &a.Address, &a.City, &a.Country, &a.Description,
		&a.PricePerNight, &a.Image, &a.RestaurantID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
