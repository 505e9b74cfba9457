package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nitesh-Kaushik/backend/internal/config"
	interfaceMocks "github.com/Nitesh-Kaushik/backend/internal/interfaces/mocks"
	"github.com/Nitesh-Kaushik/backend/internal/models"
	"github.com/Nitesh-Kaushik/backend/internal/service"
)

func tokenTestConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:  "access-secret-for-tests",
		RefreshTokenSecret: "refresh-secret-for-tests",
		AccessTokenTTL:     15 * time.Minute,
		RefreshTokenTTL:    240 * time.Hour,
	}
}

func TestIssueTokenPair(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cfg := tokenTestConfig()

	t.Run("Signs both tokens and persists the refresh token", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())

		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()
		var persisted *string
		mockRepo.On("UpdateRefreshToken", ctx, userID, mock.AnythingOfType("*string")).Run(func(args mock.Arguments) {
			persisted = args.Get(2).(*string)
		}).Return(nil).Once()

		td, err := tokens.IssueTokenPair(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, td)
		assert.NotEmpty(t, td.AccessToken)
		assert.NotEmpty(t, td.RefreshToken)
		assert.NotEqual(t, td.AccessToken, td.RefreshToken, "access and refresh tokens must differ")

		require.NotNil(t, persisted)
		assert.Equal(t, td.RefreshToken, *persisted, "the signed refresh token must be what gets stored")

		// The access token must verify against the access secret only.
		claims := &models.Claims{}
		parsed, err := jwt.ParseWithClaims(td.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.AccessTokenSecret), nil
		})
		require.NoError(t, err)
		assert.True(t, parsed.Valid)
		assert.Equal(t, userID, claims.UserID)

		_, err = jwt.ParseWithClaims(td.AccessToken, &models.Claims{}, func(*jwt.Token) (interface{}, error) {
			return []byte(cfg.RefreshTokenSecret), nil
		})
		assert.Error(t, err, "access token must not verify with the refresh secret")

		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown user yields a generic internal error", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())

		mockRepo.On("GetUserByID", ctx, userID).Return(nil, models.ErrUserNotFound).Once()

		td, err := tokens.IssueTokenPair(ctx, userID)
		assert.Nil(t, td)
		assert.ErrorIs(t, err, models.ErrInternalServer)
		assert.NotErrorIs(t, err, models.ErrUserNotFound, "issuance failures must not leak their cause")
		mockRepo.AssertNotCalled(t, "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Persistence failure yields a generic internal error", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())

		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()
		mockRepo.On("UpdateRefreshToken", ctx, userID, mock.AnythingOfType("*string")).Return(models.ErrUserNotFound).Once()

		td, err := tokens.IssueTokenPair(ctx, userID)
		assert.Nil(t, td)
		assert.ErrorIs(t, err, models.ErrInternalServer)
	})
}

func TestVerifyRefreshToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cfg := tokenTestConfig()

	issue := func(t *testing.T, mockRepo *interfaceMocks.UserRepository, tokens service.TokenService) *models.TokenDetails {
		t.Helper()
		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()
		mockRepo.On("UpdateRefreshToken", ctx, userID, mock.AnythingOfType("*string")).Return(nil).Once()
		td, err := tokens.IssueTokenPair(ctx, userID)
		require.NoError(t, err)
		return td
	}

	t.Run("Round trip resolves the user", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())
		td := issue(t, mockRepo, tokens)

		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{
			ID:           userID,
			RefreshToken: &td.RefreshToken,
		}, nil).Once()

		gotID, err := tokens.VerifyRefreshToken(ctx, td.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
	})

	t.Run("Rotated token is stale", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())
		td := issue(t, mockRepo, tokens)

		other := "some-newer-token"
		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{
			ID:           userID,
			RefreshToken: &other,
		}, nil).Once()

		_, err := tokens.VerifyRefreshToken(ctx, td.RefreshToken)
		assert.ErrorIs(t, err, models.ErrTokenStale)
	})

	t.Run("Cleared token is stale", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())
		td := issue(t, mockRepo, tokens)

		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{
			ID:           userID,
			RefreshToken: nil,
		}, nil).Once()

		_, err := tokens.VerifyRefreshToken(ctx, td.RefreshToken)
		assert.ErrorIs(t, err, models.ErrTokenStale)
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())
		td := issue(t, mockRepo, tokens)

		mockRepo.On("GetUserByID", ctx, userID).Return(nil, models.ErrUserNotFound).Once()

		_, err := tokens.VerifyRefreshToken(ctx, td.RefreshToken)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("Access token does not verify as a refresh token", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())
		td := issue(t, mockRepo, tokens)

		_, err := tokens.VerifyRefreshToken(ctx, td.AccessToken)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})

	t.Run("Expired refresh token", func(t *testing.T) {
		expiredCfg := tokenTestConfig()
		expiredCfg.RefreshTokenTTL = -time.Minute

		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, expiredCfg, zap.NewNop())
		td := issue(t, mockRepo, tokens)

		_, err := tokens.VerifyRefreshToken(ctx, td.RefreshToken)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("Malformed token", func(t *testing.T) {
		tokens := service.NewTokenService(new(interfaceMocks.UserRepository), cfg, zap.NewNop())

		_, err := tokens.VerifyRefreshToken(ctx, "garbage")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})
}

func TestVerifyAccessToken(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	cfg := tokenTestConfig()

	t.Run("Valid access token carries the user ID", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())

		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()
		mockRepo.On("UpdateRefreshToken", ctx, userID, mock.AnythingOfType("*string")).Return(nil).Once()

		td, err := tokens.IssueTokenPair(ctx, userID)
		require.NoError(t, err)

		claims, err := tokens.VerifyAccessToken(ctx, td.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, userID.String(), claims.Subject)
	})

	t.Run("Refresh token does not verify as an access token", func(t *testing.T) {
		mockRepo := new(interfaceMocks.UserRepository)
		tokens := service.NewTokenService(mockRepo, cfg, zap.NewNop())

		mockRepo.On("GetUserByID", ctx, userID).Return(&models.User{ID: userID}, nil).Once()
		mockRepo.On("UpdateRefreshToken", ctx, userID, mock.AnythingOfType("*string")).Return(nil).Once()

		td, err := tokens.IssueTokenPair(ctx, userID)
		require.NoError(t, err)

		_, err = tokens.VerifyAccessToken(ctx, td.RefreshToken)
		assert.ErrorIs(t, err, models.ErrTokenInvalid)
	})
}
