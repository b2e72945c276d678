package service

import (
	"context"
	"fmt"

	"dinelt/internal/auth"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// storyService implements StoryService.
type storyService struct {
	storyRepo repository.StoryRepository
	now       clock
	logger    zerolog.Logger
}

// NewStoryService creates a new story service.
func NewStoryService(storyRepo repository.StoryRepository, logger zerolog.Logger) StoryService {
	return &storyService{
		storyRepo: storyRepo,
		logger:    logger.With().Str("service", "story").Logger(),
	}
}

func (s *storyService) List(ctx context.Context, limit, offset int) ([]model.Story, error) {
	limit, offset = normalizePage(limit, offset)

	stories, err := s.storyRepo.ListActive(ctx, s.now.now(), limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list stories")
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return nonNil(stories), nil
}

// Create stamps the story with an expiry StoryLifetime after creation.
func (s *storyService) Create(ctx context.Context, caller auth.Principal, req *model.PostRequest) (*model.Story, error) {
	now := s.now.now()
	story := &model.Story{
		ID:        uuid.New(),
		AuthorID:  caller.UserID,
		Content:   req.Content,
		Image:     req.Image,
		CreatedAt: now,
		ExpiresAt: now.Add(model.StoryLifetime),
	}

	if err := s.storyRepo.Create(ctx, story); err != nil {
		s.logger.Error().Err(err).Str("author_id", caller.UserID.String()).Msg("failed to create story")
		return nil, fmt.Errorf("failed to create story: %w", err)
	}
	return story, nil
}

func (s *storyService) Get(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Story, error) {
	return s.authored(ctx, caller, id)
}

// Update never touches the expiry.
func (s *storyService) Update(ctx context.Context, caller auth.Principal, id uuid.UUID, req *model.PostUpdateRequest) (*model.Story, error) {
	story, err := s.authored(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		story.Content = *req.Content
	}
	if req.Image != nil {
		story.Image = req.Image
	}

	if err := s.storyRepo.Update(ctx, story); err != nil {
		s.logger.Error().Err(err).Str("story_id", id.String()).Msg("failed to update story")
		return nil, fmt.Errorf("failed to update story: %w", err)
	}
	return story, nil
}

func (s *storyService) Delete(ctx context.Context, caller auth.Principal, id uuid.UUID) error {
	if _, err := s.authored(ctx, caller, id); err != nil {
		return err
	}

	if err := s.storyRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("story_id", id.String()).Msg("failed to delete story")
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

func (s *storyService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.storyRepo.DeleteExpired(ctx, s.now.now())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to purge expired stories")
		return 0, fmt.Errorf("failed to purge expired stories: %w", err)
	}

	if n > 0 {
		s.logger.Info().Int64("count", n).Msg("purged expired stories")
	}
	return n, nil
}

// authored returns a live story only when caller wrote it.
func (s *storyService) authored(ctx context.Context, caller auth.Principal, id uuid.UUID) (*model.Story, error) {
	story, err := s.storyRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("story_id", id.String()).Msg("failed to get story")
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	if story == nil {
		return nil, model.ErrStoryNotFound
	}
	if story.AuthorID != caller.UserID {
		return nil, model.ErrForbidden
	}
	if story.Expired(s.now.now()) {
		return nil, model.ErrStoryExpired
	}
	return story, nil
}
