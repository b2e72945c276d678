package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dinelt/internal/auth"
	"dinelt/internal/events"
	"dinelt/internal/model"
	"dinelt/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	tokens      *auth.TokenMaker
	publisher   events.Publisher
	logger      zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	tokens *auth.TokenMaker,
	publisher events.Publisher,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
		publisher:   publisher,
		logger:      logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates the user and its profile in one transaction.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if err := auth.ValidatePassword(req.Password, username, email); err != nil {
		return nil, model.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:              uuid.New(),
		Username:        username,
		Email:           email,
		PasswordHash:    hash,
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		Country:         req.Country,
		City:            req.City,
		Address:         req.Address,
		PostalCode:      req.PostalCode,
		Image:           req.Image,
		IsBusinessOwner: req.IsBusinessOwner,
		IsActive:        true,
		DateJoined:      now,
	}
	profile := &model.Profile{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  user.Username,
		Image:     user.Image,
		CreatedAt: now,
	}

	tx, err := s.userRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.userRepo.Create(ctx, tx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, duplicateAccountError(err)
		}
		s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err = s.profileRepo.Create(ctx, tx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, model.ErrUsernameTaken
		}
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to create profile")
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("user registered")

	publish(ctx, s.publisher, s.logger, events.New(events.UserRegistered, user.ID.String(), map[string]any{
		"user_id":           user.ID,
		"username":          user.Username,
		"is_business_owner": user.IsBusinessOwner,
	}))

	return user, nil
}

// duplicateAccountError picks the conflict message from the violated constraint.
func duplicateAccountError(err error) error {
	if repository.ConstraintOf(err) == "users_email_key" {
		return model.ErrEmailTaken
	}
	return model.ErrUsernameTaken
}

// Login checks the credentials and issues a token pair.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Msg("invalid credentials")
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, model.ErrAccountDisabled
	}

	access, refresh, err := s.tokens.CreateTokenPair(subjectOf(user))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue tokens")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	return &model.TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh issues a new access token for a valid refresh token of an active user.
func (s *authService) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.AccessToken, error) {
	claims, err := s.tokens.Verify(req.Refresh, auth.RefreshToken)
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, model.ErrInvalidToken
	}

	access, err := s.tokens.CreateAccessToken(subjectOf(user))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue access token")
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	return &model.AccessToken{Access: access}, nil
}

func subjectOf(user *model.User) auth.Subject {
	return auth.Subject{
		UserID:          user.ID,
		Username:        user.Username,
		Email:           user.Email,
		IsStaff:         user.IsStaff,
		IsBusinessOwner: user.IsBusinessOwner,
	}
}
