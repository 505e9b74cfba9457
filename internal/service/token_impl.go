package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Nitesh-Kaushik/backend/internal/config"
	"github.com/Nitesh-Kaushik/backend/internal/interfaces"
	"github.com/Nitesh-Kaushik/backend/internal/models"
)

// Compile-time check to ensure tokenServiceImpl implements TokenService
var _ TokenService = (*tokenServiceImpl)(nil)

const tokenIssuer = "backend-auth"

type tokenServiceImpl struct {
	userRepo interfaces.UserRepository
	cfg      *config.Config
	logger   *zap.Logger
}

// NewTokenService creates a new instance of tokenServiceImpl.
func NewTokenService(userRepo interfaces.UserRepository, cfg *config.Config, logger *zap.Logger) TokenService {
	return &tokenServiceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger.Named("TokenService"),
	}
}

// IssueTokenPair signs a new access/refresh pair and persists the refresh token
// onto the user record, replacing any previous value (rotate-on-use).
func (s *tokenServiceImpl) IssueTokenPair(ctx context.Context, userID uuid.UUID) (*models.TokenDetails, error) {
	s.logger.Debug("Creating new token pair", zap.String("userID", userID.String()))

	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		s.logger.Error("Failed to get user by ID during token creation", zap.String("userID", userID.String()), zap.Error(err))
		// Deliberately not wrapped: issuance failures must not leak their cause.
		return nil, fmt.Errorf("%w: token generation failed", models.ErrInternalServer)
	}

	now := time.Now()
	td := &models.TokenDetails{
		AccessUUID:  uuid.New().String(),
		RefreshUUID: uuid.New().String(),
		AtExpires:   now.Add(s.cfg.AccessTokenTTL).Unix(),
		RtExpires:   now.Add(s.cfg.RefreshTokenTTL).Unix(),
	}

	var err error
	td.AccessToken, err = s.signToken(userID, td.AccessUUID, time.Unix(td.AtExpires, 0), s.cfg.AccessTokenSecret)
	if err != nil {
		s.logger.Error("Failed to sign access token", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("%w: token generation failed", models.ErrInternalServer)
	}

	td.RefreshToken, err = s.signToken(userID, td.RefreshUUID, time.Unix(td.RtExpires, 0), s.cfg.RefreshTokenSecret)
	if err != nil {
		s.logger.Error("Failed to sign refresh token", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("%w: token generation failed", models.ErrInternalServer)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, userID, &td.RefreshToken); err != nil {
		s.logger.Error("Failed to persist refresh token", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("%w: token generation failed", models.ErrInternalServer)
	}

	s.logger.Debug("Token pair issued", zap.String("userID", userID.String()))
	return td, nil
}

func (s *tokenServiceImpl) signToken(userID uuid.UUID, jti string, expiresAt time.Time, secret string) (string, error) {
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyRefreshToken checks signature and expiry, resolves the embedded user,
// and compares the presented token against the value stored on the user record.
func (s *tokenServiceImpl) VerifyRefreshToken(ctx context.Context, refreshToken string) (uuid.UUID, error) {
	s.logger.Debug("Verifying refresh token") // never log the token itself
	claims, err := s.parseToken(refreshToken, s.cfg.RefreshTokenSecret)
	if err != nil {
		return uuid.Nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Refresh token references unknown user", zap.String("userID", claims.UserID.String()))
			return uuid.Nil, models.ErrUserNotFound
		}
		s.logger.Error("Error resolving user during refresh token verification", zap.Error(err), zap.String("userID", claims.UserID.String()))
		return uuid.Nil, fmt.Errorf("failed to resolve user for refresh token: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		s.logger.Warn("Refresh attempt with rotated or cleared token", zap.String("userID", user.ID.String()))
		return uuid.Nil, models.ErrTokenStale
	}

	s.logger.Debug("Refresh token verified against store", zap.String("userID", user.ID.String()))
	return user.ID, nil
}

// VerifyAccessToken parses and validates an access token string.
func (s *tokenServiceImpl) VerifyAccessToken(ctx context.Context, accessToken string) (*models.Claims, error) {
	s.logger.Debug("Verifying access token")
	return s.parseToken(accessToken, s.cfg.AccessTokenSecret)
}

func (s *tokenServiceImpl) parseToken(tokenString, secret string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.logger.Warn("Token verification failed: expired")
			return nil, models.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			s.logger.Warn("Token verification failed: malformed")
			return nil, models.ErrTokenMalformed
		}
		s.logger.Error("Failed to parse token", zap.Error(err))
		return nil, models.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || !token.Valid {
		s.logger.Warn("Token verification failed (invalid claims type or signature)")
		return nil, models.ErrTokenInvalid
	}

	return claims, nil
}
