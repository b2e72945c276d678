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

type profileRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProfileRepository creates a new PostgreSQL-backed profile repository.
func NewProfileRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProfileRepository {
	return &profileRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "profile").Logger(),
	}
}

func (r *profileRepository) Create(ctx context.Context, tx pgx.Tx, profile *model.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, username, bio, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		profile.ID, profile.UserID, profile.Username, profile.Bio, profile.Image, profile.CreatedAt)
	if err != nil {
		err = duplicateError(err)
		if !errors.Is(err, ErrDuplicate) {
			r.logger.Error().Err(err).Str("user_id", profile.UserID.String()).Msg("failed to create profile")
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	return r.getOne(ctx, "user_id", userID)
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	return r.getOne(ctx, "username", username)
}

func (r *profileRepository) getOne(ctx context.Context, column string, value any) (*model.Profile, error) {
	query := `
		SELECT id, user_id, username, bio, image, created_at
		FROM profiles
		WHERE ` + column + ` = $1
	`

	var p model.Profile
	err := r.pool.QueryRow(ctx, query, value).Scan(&p.ID, &p.UserID, &p.Username, &p.Bio, &p.Image, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("lookup", column).Msg("failed to query profile")
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.Profile) error {
	query := `
		UPDATE profiles
		SET username = $2, bio = $3, image = $4
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, profile.ID, profile.Username, profile.Bio, profile.Image)
	if err != nil {
		err = duplicateError(err)
		if !errors.Is(err, ErrDuplicate) {
			r.logger.Error().Err(err).Str("profile_id", profile.ID.String()).Msg("failed to update profile")
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

func (r *profileRepository) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `
		INSERT INTO profile_follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := r.pool.Exec(ctx, query, followerID, followeeID); err != nil {
		r.logger.Error().Err(err).
			Str("follower_id", followerID.String()).
			Str("followee_id", followeeID.String()).
			Msg("failed to follow profile")
		return fmt.Errorf("failed to follow profile: %w", err)
	}

	return nil
}

func (r *profileRepository) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `DELETE FROM profile_follows WHERE follower_id = $1 AND followee_id = $2`

	if _, err := r.pool.Exec(ctx, query, followerID, followeeID); err != nil {
		r.logger.Error().Err(err).
			Str("follower_id", followerID.String()).
			Str("followee_id", followeeID.String()).
			Msg("failed to unfollow profile")
		return fmt.Errorf("failed to unfollow profile: %w", err)
	}

	return nil
}

func (r *profileRepository) Followers(ctx context.Context, profileID uuid.UUID) ([]string, error) {
	query := `
		SELECT p.username
		FROM profile_follows f
		JOIN profiles p ON p.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY p.username
	`
	return r.usernames(ctx, query, profileID)
}

func (r *profileRepository) Following(ctx context.Context, profileID uuid.UUID) ([]string, error) {
	query := `
		SELECT p.username
		FROM profile_follows f
		JOIN profiles p ON p.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY p.username
	`
	return r.usernames(ctx, query, profileID)
}

func (r *profileRepository) usernames(ctx context.Context, query string, profileID uuid.UUID) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		r.logger.Error().Err(err).Str("profile_id", profileID.String()).Msg("failed to query follow graph")
		return nil, fmt.Errorf("failed to query follow graph: %w", err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan follow graph: %w", err)
	}

	return names, nil
}
