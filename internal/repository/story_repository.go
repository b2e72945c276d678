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

const storySelect = `
	SELECT id, author_id, content, image, likes, created_at, expires_at
	FROM stories
`

type storyRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewStoryRepository creates a new PostgreSQL-backed story repository.
func NewStoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) StoryRepository {
	return &storyRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "story").Logger(),
	}
}

func (r *storyRepository) ListActive(ctx context.Context, now time.Time, limit, offset int) ([]model.Story, error) {
	return r.query(ctx, storySelect+` WHERE expires_at > $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		now, limit, offset)
}

func (r *storyRepository) ListActiveByAuthor(ctx context.Context, authorID uuid.UUID, now time.Time) ([]model.Story, error) {
	return r.query(ctx, storySelect+` WHERE author_id = $1 AND expires_at > $2 ORDER BY created_at DESC`,
		authorID, now)
}

func (r *storyRepository) query(ctx context.Context, query string, args ...any) ([]model.Story, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query stories")
		return nil, fmt.Errorf("failed to query stories: %w", err)
	}

	stories, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Story, error) {
		s, err := scanStory(row)
		if err != nil {
			return model.Story{}, err
		}
		return *s, nil
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to scan story rows")
		return nil, fmt.Errorf("failed to scan stories: %w", err)
	}

	return stories, nil
}

func (r *storyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	s, err := scanStory(r.pool.QueryRow(ctx, storySelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("story_id", id.String()).Msg("failed to query story")
		return nil, fmt.Errorf("failed to query story: %w", err)
	}
	return s, nil
}

func (r *storyRepository) Create(ctx context.Context, story *model.Story) error {
	query := `
		INSERT INTO stories (id, author_id, content, image, likes, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query, story.ID, story.AuthorID, story.Content, story.Image,
		story.Likes, story.CreatedAt, story.ExpiresAt)
	if err != nil {
		r.logger.Error().Err(err).Str("story_id", story.ID.String()).Msg("failed to create story")
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

func (r *storyRepository) Update(ctx context.Context, story *model.Story) error {
	_, err := r.pool.Exec(ctx, `UPDATE stories SET content = $2, image = $3 WHERE id = $1`,
		story.ID, story.Content, story.Image)
	if err != nil {
		r.logger.Error().Err(err).Str("story_id", story.ID.String()).Msg("failed to update story")
		return fmt.Errorf("failed to update story: %w", err)
	}
	return nil
}

func (r *storyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("story_id", id.String()).Msg("failed to delete story")
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

func (r *storyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stories WHERE expires_at <= $1`, now)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to delete expired stories")
		return 0, fmt.Errorf("failed to delete expired stories: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanStory(row pgx.Row) (*model.Story, error) {
	var s model.Story
	err := row.Scan(&s.ID, &s.AuthorID, &s.Content, &s.Image, &s.Likes, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
