package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Username      string    `db:"username" json:"username"`
	FullName      string    `db:"full_name" json:"fullname"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"` // Never serialized
	AvatarURL     string    `db:"avatar_url" json:"avatar"`
	CoverImageURL string    `db:"cover_image_url" json:"coverImage,omitempty"`
	RefreshToken  *string   `db:"refresh_token" json:"-"` // At most one live token; nil when logged out
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}
