package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinelt/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const bookingSelect = `
	SELECT id, user_id, accommodation_id, check_in_date, check_out_date, number_of_guests,
		special_requests, total_price, created_at
	FROM bookings
`

type bookingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBookingRepository creates a new PostgreSQL-backed booking repository.
func NewBookingRepository(pool *pgxpool.Pool, logger zerolog.Logger) BookingRepository {
	return &bookingRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "booking").Logger(),
	}
}

func (r *bookingRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return beginTx(ctx, r.pool, r.logger)
}

func (r *bookingRepository) LockAccommodation(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Accommodation, error) {
	return getAccommodation(ctx, tx, r.logger, accommodationSelect+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *bookingRepository) HasOverlap(ctx context.Context, tx pgx.Tx, accommodationID uuid.UUID, checkIn, checkOut time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE accommodation_id = $1 AND check_in_date < $3 AND check_out_date > $2
		)
	`

	var overlap bool
	if err := tx.QueryRow(ctx, query, accommodationID, checkIn, checkOut).Scan(&overlap); err != nil {
		r.logger.Error().Err(err).Str("accommodation_id", accommodationID.String()).Msg("failed to check booking overlap")
		return false, fmt.Errorf("failed to check booking overlap: %w", err)
	}
	return overlap, nil
}

func (r *bookingRepository) Create(ctx context.Context, tx pgx.Tx, b *model.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, accommodation_id, check_in_date, check_out_date,
			number_of_guests, special_requests, total_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query, b.ID, b.UserID, b.AccommodationID, b.CheckInDate, b.CheckOutDate,
		b.NumberOfGuests, b.SpecialRequests, b.TotalPrice, b.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("booking_id", b.ID.String()).Msg("failed to create booking")
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.logger.Debug().Str("booking_id", b.ID.String()).Msg("booking created successfully")
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, bookingSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("booking_id", id.String()).Msg("failed to query booking")
		return nil, fmt.Errorf("failed to query booking: %w", err)
	}
	return b, nil
}

func (r *bookingRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Booking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+` WHERE user_id = $1 ORDER BY check_in_date LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query bookings")
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	bookings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Booking, error) {
		b, err := scanBooking(row)
		if err != nil {
			return model.Booking{}, err
		}
		return *b, nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan booking rows")
		return nil, fmt.Errorf("failed to scan bookings: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("booking_id", id.String()).Msg("failed to delete booking")
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return nil
}

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.AccommodationID, &b.CheckInDate, &b.CheckOutDate,
		&b.NumberOfGuests, &b.SpecialRequests, &b.TotalPrice, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	b.Nights = model.Nights(b.CheckInDate, b.CheckOutDate)
	return &b, nil
}
