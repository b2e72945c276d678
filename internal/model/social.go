package model

import (
	"time"

	"github.com/google/uuid"
)

// StoryLifetime is how long a story stays visible after creation.
const StoryLifetime = 24 * time.Hour

// Profile is the one-to-one social extension of a user account.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileDetail is a profile together with its follow graph and content.
type ProfileDetail struct {
	Profile
	IsBusinessOwner bool     `json:"is_business_owner"`
	Followers       []string `json:"followers"`
	Following       []string `json:"following"`
	Posts           []Post   `json:"posts"`
	Stories         []Story  `json:"stories"`
}

// ProfileUpdateRequest updates the writable profile fields. Nil fields are left unchanged.
type ProfileUpdateRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=200"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=300"`
	Image    *string `json:"image,omitempty" validate:"omitempty,max=255"`
}

// Post is a permanent piece of user content.
type Post struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"author"`
	Content       string    `json:"content"`
	Image         *string   `json:"image"`
	Likes         int       `json:"likes"`
	CommentsCount int       `json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// PostRequest creates a post.
type PostRequest struct {
	Content string  `json:"content" validate:"required"`
	Image   *string `json:"image,omitempty" validate:"omitempty,max=255"`
}

// PostUpdateRequest updates a post or story. Nil fields are left unchanged.
type PostUpdateRequest struct {
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Image   *string `json:"image,omitempty" validate:"omitempty,max=255"`
}

// Story is user content that expires StoryLifetime after creation.
type Story struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"author"`
	Content   string    `json:"content"`
	Image     *string   `json:"image"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the story is no longer visible at now.
func (s *Story) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Comment is a short reply attached to a post.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post"`
	AuthorID  uuid.UUID `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentRequest creates a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required,max=100"`
}
