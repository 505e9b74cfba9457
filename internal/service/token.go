package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nitesh-Kaushik/backend/internal/models"
)

// TokenService mints and verifies the access/refresh token pair representing a
// successful authentication.
type TokenService interface {
	// IssueTokenPair signs a new access/refresh pair for the user and persists
	// the refresh token onto the user record, replacing any previous value.
	// Failures (missing user, persistence error) surface as a generic internal
	// error so the cause is not leaked to clients.
	IssueTokenPair(ctx context.Context, userID uuid.UUID) (*models.TokenDetails, error)

	// VerifyRefreshToken checks a presented refresh token. It fails with
	// models.ErrTokenInvalid / models.ErrTokenExpired / models.ErrTokenMalformed
	// on cryptographic problems, models.ErrUserNotFound if the embedded identity
	// does not resolve, and models.ErrTokenStale if the token does not match the
	// value currently stored on the user (already rotated or cleared).
	VerifyRefreshToken(ctx context.Context, refreshToken string) (uuid.UUID, error)

	// VerifyAccessToken parses and validates an access token string.
	VerifyAccessToken(ctx context.Context, accessToken string) (*models.Claims, error)
}
