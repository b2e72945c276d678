package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dinelt/internal/auth"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/rs/zerolog"
)

// profileService implements ProfileService.
type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	storyRepo   repository.StoryRepository
	now         clock
	logger      zerolog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	storyRepo repository.StoryRepository,
	logger zerolog.Logger,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		storyRepo:   storyRepo,
		logger:      logger.With().Str("service", "profile").Logger(),
	}
}

func (s *profileService) Me(ctx context.Context, caller auth.Principal) (*model.ProfileDetail, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, model.ErrProfileNotFound
	}
	return s.detail(ctx, profile)
}

func (s *profileService) GetByUsername(ctx context.Context, username string) (*model.ProfileDetail, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, model.ErrProfileNotFound
	}
	return s.detail(ctx, profile)
}

// Update changes username, bio and image. Everything else is read-only.
func (s *profileService) Update(ctx context.Context, caller auth.Principal, req *model.ProfileUpdateRequest) (*model.ProfileDetail, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to get profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if profile == nil {
		return nil, model.ErrProfileNotFound
	}

	if req.Username != nil {
		profile.Username = strings.TrimSpace(*req.Username)
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Image != nil {
		profile.Image = req.Image
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.ErrUsernameTaken
		}
		s.logger.Error().Err(err).Str("profile_id", profile.ID.String()).Msg("failed to update profile")
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.detail(ctx, profile)
}

// DeleteAccount deletes the user row. The profile and everything the user
// authored go with it through foreign key cascades.
func (s *profileService) DeleteAccount(ctx context.Context, caller auth.Principal) error {
	if err := s.userRepo.Delete(ctx, caller.UserID); err != nil {
		s.logger.Error().Err(err).Str("user_id", caller.UserID.String()).Msg("failed to delete account")
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info().Str("user_id", caller.UserID.String()).Msg("account deleted")
	return nil
}

func (s *profileService) Follow(ctx context.Context, caller auth.Principal, username string) error {
	follower, followee, err := s.followPair(ctx, caller, username)
	if err != nil {
		return err
	}

	if err := s.profileRepo.Follow(ctx, follower.ID, followee.ID); err != nil {
		s.logger.Error().Err(err).Str("followee", username).Msg("failed to follow profile")
		return fmt.Errorf("failed to follow profile: %w", err)
	}
	return nil
}

func (s *profileService) Unfollow(ctx context.Context, caller auth.Principal, username string) error {
	follower, followee, err := s.followPair(ctx, caller, username)
	if err != nil {
		return err
	}

	if err := s.profileRepo.Unfollow(ctx, follower.ID, followee.ID); err != nil {
		s.logger.Error().Err(err).Str("followee", username).Msg("failed to unfollow profile")
		return fmt.Errorf("failed to unfollow profile: %w", err)
	}
	return nil
}

// followPair resolves the caller's profile and the target profile.
func (s *profileService) followPair(ctx context.Context, caller auth.Principal, username string) (*model.Profile, *model.Profile, error) {
	follower, err := s.profileRepo.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if follower == nil {
		return nil, nil, model.ErrProfileNotFound
	}

	followee, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if followee == nil {
		return nil, nil, model.ErrProfileNotFound
	}

	if follower.ID == followee.ID {
		return nil, nil, model.ErrSelfFollow
	}
	return follower, followee, nil
}

// detail embeds the follow graph and the owner's content into a profile.
func (s *profileService) detail(ctx context.Context, profile *model.Profile) (*model.ProfileDetail, error) {
	user, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}

	followers, err := s.profileRepo.Followers(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get followers: %w", err)
	}
	following, err := s.profileRepo.Following(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get following: %w", err)
	}
	posts, err := s.postRepo.ListByAuthor(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get posts: %w", err)
	}
	stories, err := s.storyRepo.ListActiveByAuthor(ctx, profile.UserID, s.now.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get stories: %w", err)
	}

	return &model.ProfileDetail{
		Profile:         *profile,
		IsBusinessOwner: user.IsBusinessOwner,
		Followers:       nonNil(followers),
		Following:       nonNil(following),
		Posts:           nonNil(posts),
		Stories:         nonNil(stories),
	}, nil
}

// nonNil keeps empty collections rendering as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
