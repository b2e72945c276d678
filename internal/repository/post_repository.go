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

const postSelect = `
	SELECT p.id, p.author_id, p.content, p.image, p.likes,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comments_count,
		p.created_at
	FROM posts p
`

type postRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostRepository creates a new PostgreSQL-backed post repository.
func NewPostRepository(pool *pgxpool.Pool, logger zerolog.Logger) PostRepository {
	return &postRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "post").Logger(),
	}
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return r.query(ctx, postSelect+` ORDER BY p.created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]model.Post, error) {
	return r.query(ctx, postSelect+` WHERE p.author_id = $1 ORDER BY p.created_at DESC`, authorID)
}

func (r *postRepository) query(ctx context.Context, query string, args ...any) ([]model.Post, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query posts")
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan post row")
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating post rows")
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, postSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("post_id", id.String()).Msg("failed to query post")
		return nil, fmt.Errorf("failed to query post: %w", err)
	}
	return p, nil
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (id, author_id, content, image, likes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, post.ID, post.AuthorID, post.Content, post.Image, post.Likes, post.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", post.ID.String()).Msg("failed to create post")
		return fmt.Errorf("failed to create post: %w", err)
	}

	r.logger.Debug().Str("post_id", post.ID.String()).Msg("post created successfully")
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	_, err := r.pool.Exec(ctx, `UPDATE posts SET content = $2, image = $3 WHERE id = $1`,
		post.ID, post.Content, post.Image)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", post.ID.String()).Msg("failed to update post")
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id); err != nil {
		r.logger.Error().Err(err).Str("post_id", id.String()).Msg("failed to delete post")
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (r *postRepository) Like(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE posts SET likes = likes + 1 WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", id.String()).Msg("failed to like post")
		return nil, fmt.Errorf("failed to like post: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

func (r *postRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, comment.ID, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", comment.PostID.String()).Msg("failed to create comment")
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	query := `
		SELECT id, post_id, author_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at
	`

	rows, err := r.pool.Query(ctx, query, postID)
	if err != nil {
		r.logger.Error().Err(err).Str("post_id", postID.String()).Msg("failed to query comments")
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Comment, error) {
		var c model.Comment
		err := row.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan comments: %w", err)
	}

	return comments, nil
}

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Content, &p.Image, &p.Likes, &p.CommentsCount, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
