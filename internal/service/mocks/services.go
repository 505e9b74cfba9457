package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Nitesh-Kaushik/backend/internal/models"
	"github.com/Nitesh-Kaushik/backend/internal/service"
)

// Mock TokenService
type TokenService struct {
	mock.Mock
}

func (m *TokenService) IssueTokenPair(ctx context.Context, userID uuid.UUID) (*models.TokenDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenDetails), args.Error(1)
}

func (m *TokenService) VerifyRefreshToken(ctx context.Context, refreshToken string) (uuid.UUID, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenService) VerifyAccessToken(ctx context.Context, accessToken string) (*models.Claims, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Claims), args.Error(1)
}

// Mock AuthService
type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, in service.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, login, password string) (*models.User, *models.TokenDetails, error) {
	args := m.Called(ctx, login, password)
	var user *models.User
	var td *models.TokenDetails
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	if args.Get(1) != nil {
		td = args.Get(1).(*models.TokenDetails)
	}
	return user, td, args.Error(2)
}

func (m *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenDetails), args.Error(1)
}

func (m *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *AuthService) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	args := m.Called(ctx, userID, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *AuthService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	args := m.Called(ctx, userID, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
