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

// postService implements PostService.
type postService struct {
	postRepo repository.PostRepository
	logger   zerolog.Logger
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, logger zerolog.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		logger:   logger.With().Str("service", "post").Logger(),
	}
}

func (s *postService) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	limit, offset = normalizePage(limit, offset)

	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to list posts")
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return nonNil(posts), nil
}

func (s *postService) Create(ctx context.Context, caller auth.Principal, req *model.PostRequest) (*model.Post, error) {
	post := &model.Post{
		ID:        uuid.New(),
		AuthorID:  caller.UserID,
		Content:   req.Content,
		Image:     req.Image,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("author_id", caller.UserID.String()).Msg("failed to create post")
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Debug().Str("post_id", post.ID.String()).Msg("post created")
	return post, nil
}

func (s *postService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Post, error) {
	return s.authored(ctx, caller, id)
}

func (s *postService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.PostUpdateRequest) (*model.Post, error) {
	post, err := s.authored(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Image != nil {
		post.Image = req.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		s.logger.Error().Err(err).Str("post_id", id.String()).Msg("failed to update post")
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

func (s *postService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	if _, err := s.authored(ctx, caller, id); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("post_id", id.String()).Msg("failed to delete post")
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *postService) Like(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.Like(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("post_id", id.String()).Msg("failed to like post")
		return nil, fmt.Errorf("failed to like post: %w", err)
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

func (s *postService) ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	if _, err := s.get(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.postRepo.ListComments(ctx, postID)
	if err != nil {
		s.logger.Error().Err(err).Str("post_id", postID.String()).Msg("failed to list comments")
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return nonNil(comments), nil
}

func (s *postService) AddComment(ctx context.Context, caller auth.Principal, postID uuid.UUID, req *model.CommentRequest) (*model.Comment, error) {
	if _, err := s.get(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  caller.UserID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		s.logger.Error().Err(err).Str("post_id", postID.String()).Msg("failed to create comment")
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *postService) get(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("post_id", id.String()).Msg("failed to get post")
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

// authored returns the post only when caller wrote it.
func (s *postService) authored(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Post, error) {
	post, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != caller.UserID {
		return nil, model.ErrForbidden
	}
	return post, nil
}
