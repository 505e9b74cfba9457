package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nitesh-Kaushik/backend/internal/config"
	"github.com/Nitesh-Kaushik/backend/internal/interfaces"
	"github.com/Nitesh-Kaushik/backend/internal/models"
)

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

// authServiceImpl implements the AuthService interface.
type authServiceImpl struct {
	userRepo interfaces.UserRepository
	tokens   TokenService
	uploader interfaces.MediaUploader
	cfg      *config.Config
	logger   *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(userRepo interfaces.UserRepository, tokens TokenService, uploader interfaces.MediaUploader, cfg *config.Config, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		uploader: uploader,
		cfg:      cfg,
		logger:   logger.Named("AuthService"),
	}
}

// Register creates a new user.
func (s *authServiceImpl) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	logFields := []zap.Field{zap.String("username", in.Username), zap.String("email", in.Email)}
	s.logger.Info("Registering new user", logFields...)

	if in.Username == "" || in.FullName == "" || in.Email == "" || in.Password == "" {
		s.logger.Warn("Registration attempt with blank required field", logFields...)
		return nil, fmt.Errorf("%w: all fields are required", models.ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(in.Email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: invalid email format", models.ErrInvalidInput)
	}

	existingUser, err := s.userRepo.GetUserByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing username during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing username: %w", err)
	}
	if existingUser != nil {
		s.logger.Warn("Registration attempt for existing username", logFields...)
		return nil, models.ErrUserAlreadyExists
	}

	existingUser, err = s.userRepo.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		s.logger.Error("Error checking existing email during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("error checking existing email: %w", err)
	}
	if existingUser != nil {
		s.logger.Warn("Registration attempt for existing email", logFields...)
		return nil, models.ErrEmailAlreadyExists
	}

	if in.AvatarLocalPath == "" {
		s.logger.Warn("Registration attempt without avatar file", logFields...)
		return nil, models.ErrAvatarRequired
	}

	avatarURL, err := s.uploader.Upload(ctx, in.AvatarLocalPath)
	if err != nil {
		s.logger.Warn("Avatar upload failed during registration", append(logFields, zap.Error(err))...)
		return nil, models.ErrAvatarRequired
	}

	// Cover image is optional; an upload failure is tolerated and stored empty.
	coverImageURL := ""
	if in.CoverImageLocalPath != "" {
		coverImageURL, err = s.uploader.Upload(ctx, in.CoverImageLocalPath)
		if err != nil {
			s.logger.Warn("Cover image upload failed, continuing without it", append(logFields, zap.Error(err))...)
			coverImageURL = ""
		}
	}

	hashedPassword, err := hashPassword(in.Password, s.cfg.PasswordPepper)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:      in.Username,
		FullName:      in.FullName,
		Email:         in.Email,
		PasswordHash:  hashedPassword,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, models.ErrUserAlreadyExists) && !errors.Is(err, models.ErrEmailAlreadyExists) {
			s.logger.Error("Failed to create user via repository", append(logFields, zap.Error(err))...)
		}
		return nil, err
	}

	// Re-fetch so the response reflects exactly what was stored.
	created, err := s.userRepo.GetUserByID(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to re-fetch created user", append(logFields, zap.Error(err))...)
		return nil, fmt.Errorf("%w: something went wrong while registering the user", models.ErrInternalServer)
	}

	s.logger.Info("User registered successfully", zap.String("userID", created.ID.String()), zap.String("username", created.Username))
	return created, nil
}

// Login authenticates a user by username or email and issues a token pair.
func (s *authServiceImpl) Login(ctx context.Context, login, password string) (*models.User, *models.TokenDetails, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	s.logger.Info("Login attempt", zap.String("login", login))

	if login == "" {
		return nil, nil, fmt.Errorf("%w: username or email is required", models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("login", login))
			return nil, nil, models.ErrUserNotFound
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("login", login))
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !checkPasswordHash(password, user.PasswordHash, s.cfg.PasswordPepper) {
		s.logger.Warn("Login failed: invalid password", zap.String("userID", user.ID.String()))
		return nil, nil, models.ErrInvalidCredentials
	}

	td, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to issue tokens during login", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, nil, err
	}

	// Re-fetch so the returned record carries the rotated refresh token state.
	loggedIn, err := s.userRepo.GetUserByID(ctx, user.ID)
	if err != nil {
		s.logger.Error("Failed to re-fetch user after login", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, nil, fmt.Errorf("failed to get user after login: %w", err)
	}

	s.logger.Info("User logged in successfully", zap.String("userID", user.ID.String()))
	return loggedIn, td, nil
}

// Logout clears the user's stored refresh token.
func (s *authServiceImpl) Logout(ctx context.Context, userID uuid.UUID) error {
	log := s.logger.With(zap.String("userID", userID.String()))
	log.Debug("Attempting to logout user by clearing refresh token")

	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		log.Error("Failed to clear refresh token during logout", zap.Error(err))
		return err
	}

	log.Info("User logged out successfully")
	return nil
}

// Refresh verifies the presented refresh token and issues a fresh pair.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*models.TokenDetails, error) {
	s.logger.Info("Token refresh attempt") // never log the token itself

	userID, err := s.tokens.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	td, err := s.tokens.IssueTokenPair(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Token refreshed successfully", zap.String("userID", userID.String()))
	return td, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	log := s.logger.With(zap.String("userID", userID.String()))
	log.Info("Attempting to change user password")

	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", models.ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !checkPasswordHash(oldPassword, user.PasswordHash, s.cfg.PasswordPepper) {
		log.Warn("Password change failed: invalid old password")
		return models.ErrInvalidCredentials
	}

	newHash, err := hashPassword(newPassword, s.cfg.PasswordPepper)
	if err != nil {
		log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, newHash); err != nil {
		return err
	}

	log.Info("User password updated successfully")
	return nil
}

// UpdateAvatar uploads a new avatar image and updates the user record.
func (s *authServiceImpl) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, s.userRepo.UpdateAvatarURL)
}

// UpdateCoverImage uploads a new cover image and updates the user record.
func (s *authServiceImpl) UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	return s.updateImage(ctx, userID, localPath, s.userRepo.UpdateCoverImageURL)
}

func (s *authServiceImpl) updateImage(ctx context.Context, userID uuid.UUID, localPath string, store func(context.Context, uuid.UUID, string) error) (*models.User, error) {
	log := s.logger.With(zap.String("userID", userID.String()))

	if localPath == "" {
		return nil, fmt.Errorf("%w: image file is required", models.ErrInvalidInput)
	}

	url, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		log.Warn("Image upload failed", zap.Error(err))
		return nil, models.ErrUploadFailed
	}

	if err := store(ctx, userID, url); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.Error("Failed to re-fetch user after image update", zap.Error(err))
		return nil, err
	}

	log.Info("User image updated successfully", zap.String("url", url))
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *authServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// --- Helper Functions ---

// applyPepper applies HMAC-SHA256 using the pepper as the key.
func applyPepper(password, pepper string) []byte {
	h := hmac.New(sha256.New, []byte(pepper))
	h.Write([]byte(password))
	return h.Sum(nil)
}

// hashPassword generates a bcrypt hash of the password after applying the pepper.
func hashPassword(password, pepper string) (string, error) {
	pepperedPassword := applyPepper(password, pepper)
	bytes, err := bcrypt.GenerateFromPassword(pepperedPassword, bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPasswordHash compares a plain text password (after applying the pepper)
// with a stored hash.
func checkPasswordHash(password, hash, pepper string) bool {
	pepperedPassword := applyPepper(password, pepper)
	err := bcrypt.CompareHashAndPassword([]byte(hash), pepperedPassword)
	return err == nil
}
