package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nitesh-Kaushik/backend/internal/models"
)

// RegisterInput carries the fields of a registration request. The image paths
// point at locally saved multipart uploads.
type RegisterInput struct {
	Username            string
	FullName            string
	Email               string
	Password            string
	AvatarLocalPath     string
	CoverImageLocalPath string
}

// AuthService defines the authentication operations exposed to handlers.
type AuthService interface {
	// Register validates the input, uploads the images and creates the user.
	// Returns the created user re-fetched from the store.
	Register(ctx context.Context, in RegisterInput) (*models.User, error)

	// Login authenticates by username or email and issues a token pair.
	Login(ctx context.Context, login, password string) (*models.User, *models.TokenDetails, error)

	// Logout clears the user's stored refresh token.
	Logout(ctx context.Context, userID uuid.UUID) error

	// Refresh verifies a presented refresh token and issues a fresh pair,
	// invalidating the presented token (rotate-on-use).
	Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error)

	// ChangePassword verifies the old password and stores a new hash.
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error

	// UpdateAvatar uploads a new avatar image and updates the user record.
	UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)

	// UpdateCoverImage uploads a new cover image and updates the user record.
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
}
