package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nitesh-Kaushik/backend/internal/models"
)

// UserRepository defines the credential store: one record per user with a
// hashed password and at most one active refresh token.
type UserRepository interface {
	// CreateUser inserts a new user. Returns models.ErrUserAlreadyExists or
	// models.ErrEmailAlreadyExists on unique constraint violations.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID.
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetUserByUsername retrieves a user by username (stored lower-case).
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByEmail retrieves a user by email address.
	// Returns models.ErrUserNotFound if the user does not exist.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByLogin retrieves a user whose username or email matches login.
	// Returns models.ErrUserNotFound if no record matches.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// UpdateRefreshToken replaces the stored refresh token for a user.
	// A nil token clears the field (logout). Returns models.ErrUserNotFound
	// if the user does not exist.
	UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, newPasswordHash string) error

	// UpdateAvatarURL replaces the stored avatar URL.
	UpdateAvatarURL(ctx context.Context, userID uuid.UUID, url string) error

	// UpdateCoverImageURL replaces the stored cover image URL.
	UpdateCoverImageURL(ctx context.Context, userID uuid.UUID, url string) error
}
