package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens.
	ErrInvalidToken = errors.New("token is invalid or expired")
	// ErrWrongTokenType is returned when a refresh token is used as an access token or vice versa.
	ErrWrongTokenType = errors.New("token has wrong type")
)

// Claims is the JWT payload issued to authenticated users.
type Claims struct {
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	IsStaff         bool      `json:"is_staff"`
	IsBusinessOwner bool      `json:"is_business_owner"`
	TokenType       TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Subject carries the account fields that go into a token.
type Subject struct {
	UserID          uuid.UUID
	Username        string
	Email           string
	IsStaff         bool
	IsBusinessOwner bool
}

// TokenMaker signs and verifies HS256 tokens.
type TokenMaker struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenMaker creates a TokenMaker for the given secret and lifetimes.
func NewTokenMaker(secret string, accessTTL, refreshTTL time.Duration) *TokenMaker {
	return &TokenMaker{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// CreateTokenPair issues an access token and a refresh token for sub.
func (m *TokenMaker) CreateTokenPair(sub Subject) (access, refresh string, err error) {
	access, err = m.create(sub, AccessToken, m.accessTTL)
	if err != nil {
		return "", "", err
	}

	refresh, err = m.create(sub, RefreshToken, m.refreshTTL)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// CreateAccessToken issues a new access token for sub.
func (m *TokenMaker) CreateAccessToken(sub Subject) (string, error) {
	return m.create(sub, AccessToken, m.accessTTL)
}

// Verify parses token and checks its signature, expiry and type.
func (m *TokenMaker) Verify(token string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != expected {
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

func (m *TokenMaker) create(sub Subject, tokenType TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:          sub.UserID,
		Username:        sub.Username,
		Email:           sub.Email,
		IsStaff:         sub.IsStaff,
		IsBusinessOwner: sub.IsBusinessOwner,
		TokenType:       tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.UserID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return signed, nil
}
