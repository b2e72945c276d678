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

const reservationSelect = `
	SELECT id, user_id, restaurant_id, reservation_date, number_of_people, special_requests,
		reservation_type, created_at
	FROM reservations
`

type reservationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReservationRepository creates a new PostgreSQL-backed reservation repository.
func NewReservationRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReservationRepository {
	return &reservationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "reservation").Logger(),
	}
}

func (r *reservationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Reservation, error) {
	rows, err := r.pool.Query(ctx, reservationSelect+` WHERE user_id = $1 ORDER BY reservation_date LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query reservations")
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}

	reservations, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Reservation, error) {
		res, err := scanReservation(row)
		if err != nil {
			return model.Reservation{}, err
		}
		return *res, nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan reservation rows")
		return nil, fmt.Errorf("failed to scan reservations: %w", err)
	}

	return reservations, nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	res, err := scanReservation(r.pool.QueryRow(ctx, reservationSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("reservation_id", id.String()).Msg("failed to query reservation")
		return nil, fmt.Errorf("failed to query reservation: %w", err)
	}
	return res, nil
}

func (r *reservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	query := `
		INSERT INTO reservations (id, user_id, restaurant_id, reservation_date, number_of_people,
			special_requests, reservation_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query, res.ID, res.UserID, res.RestaurantID, res.ReservationDate,
		res.NumberOfPeople, res.SpecialRequests, res.ReservationType, res.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("reservation_id", res.ID.String()).Msg("failed to create reservation")
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) Update(ctx context.Context, res *model.Reservation) error {
	query := `
		UPDATE reservations
		SET reservation_date = $2, number_of_people = $3, special_requests = $4, reservation_type = $5
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, res.ID, res.ReservationDate, res.NumberOfPeople,
		res.SpecialRequests, res.ReservationType)
	if err != nil {
		r.logger.Error().Err(err).Str("reservation_id", res.ID.String()).Msg("failed to update reservation")
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("reservation_id", id.String()).Msg("failed to delete reservation")
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	return nil
}

func (r *reservationRepository) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]model.ReservationCategory, error) {
	query := `
		SELECT id, name, reservation_type, restaurant_id
		FROM reservation_categories
		WHERE restaurant_id = $1
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", restaurantID.String()).Msg("failed to query reservation categories")
		return nil, fmt.Errorf("failed to query reservation categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.ReservationCategory, error) {
		var c model.ReservationCategory
		err := row.Scan(&c.ID, &c.Name, &c.ReservationType, &c.RestaurantID)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan reservation categories: %w", err)
	}
	return categories, nil
}

func (r *reservationRepository) CreateCategory(ctx context.Context, c *model.ReservationCategory) error {
	query := `
		INSERT INTO reservation_categories (id, name, reservation_type, restaurant_id)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, c.ID, c.Name, c.ReservationType, c.RestaurantID); err != nil {
		r.logger.Error().Err(err).Str("restaurant_id", c.RestaurantID.String()).Msg("failed to create reservation category")
		return fmt.Errorf("failed to create reservation category: %w", err)
	}
	return nil
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(&res.ID, &res.UserID, &res.RestaurantID, &res.ReservationDate, &res.NumberOfPeople,
		&res.SpecialRequests, &res.ReservationType, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}
