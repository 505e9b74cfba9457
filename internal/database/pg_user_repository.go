package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/Nitesh-Kaushik/backend/internal/interfaces"
	"github.com/Nitesh-Kaushik/backend/internal/models"
)

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ interfaces.UserRepository = (*pgUserRepository)(nil)

const userColumns = `id, username, full_name, email, password_hash, avatar_url, COALESCE(cover_image_url, ''), refresh_token, created_at, updated_at`

type pgUserRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// CreateUser inserts a new user into the database.
func (r *pgUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, full_name, email, password_hash, avatar_url, cover_image_url)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')) RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("username", user.Username), zap.String("email", user.Email))
	err := r.db.QueryRow(ctx, query, user.Username, user.FullName, user.Email, user.PasswordHash, user.AvatarURL, user.CoverImageURL).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 is unique_violation (duplicate username or email)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			logFields := []zap.Field{zap.String("username", user.Username), zap.String("email", user.Email)}
			switch pgErr.ConstraintName {
			case "users_username_key":
				r.logger.Warn("Attempted to create duplicate user by username", logFields...)
				return models.ErrUserAlreadyExists
			case "users_email_key":
				r.logger.Warn("Attempted to create duplicate user by email", logFields...)
				return models.ErrEmailAlreadyExists
			default:
				r.logger.Warn("Attempted to create user with unique constraint violation", append(logFields, zap.String("constraint", pgErr.ConstraintName))...)
				return models.ErrUserAlreadyExists
			}
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("username", user.Username), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}
	r.logger.Info("User created successfully", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return nil
}

// GetUserByID retrieves a user by their ID.
func (r *pgUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getUser(ctx, query, id)
}

// GetUserByUsername retrieves a user by their username.
func (r *pgUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return r.getUser(ctx, query, username)
}

// GetUserByEmail retrieves a user by their email.
func (r *pgUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getUser(ctx, query, email)
}

// GetUserByLogin retrieves a user whose username or email matches the login value.
func (r *pgUserRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $1`
	return r.getUser(ctx, query, login)
}

func (r *pgUserRepository) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	r.logger.Debug("Executing query", zap.String("query", query))
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.FullName, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.CoverImageURL, &user.RefreshToken, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found", zap.String("query", query))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to get user from postgres: %w", err)
	}
	return user, nil
}

// UpdateRefreshToken replaces the stored refresh token for a user.
// A nil token clears the field.
func (r *pgUserRepository) UpdateRefreshToken(ctx context.Context, userID uuid.UUID, token *string) error {
	query := `UPDATE users SET refresh_token = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("userID", userID.String()), zap.Bool("clearing", token == nil))

	cmdTag, err := r.db.Exec(ctx, query, token, userID)
	if err != nil {
		r.logger.Error("Failed to update refresh token in postgres", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to update refresh token: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update refresh token for non-existent user", zap.String("userID", userID.String()))
		return models.ErrUserNotFound
	}

	return nil
}

// UpdatePasswordHash replaces the stored password hash for a user.
func (r *pgUserRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("userID", userID.String()))

	cmdTag, err := r.db.Exec(ctx, query, newPasswordHash, userID)
	if err != nil {
		r.logger.Error("Failed to update password hash in postgres", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update password for non-existent user", zap.String("userID", userID.String()))
		return models.ErrUserNotFound
	}

	r.logger.Info("User password hash updated successfully", zap.String("userID", userID.String()))
	return nil
}

// UpdateAvatarURL replaces the stored avatar URL for a user.
func (r *pgUserRepository) UpdateAvatarURL(ctx context.Context, userID uuid.UUID, url string) error {
	return r.updateImageURL(ctx, `UPDATE users SET avatar_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, userID, url)
}

// UpdateCoverImageURL replaces the stored cover image URL for a user.
func (r *pgUserRepository) UpdateCoverImageURL(ctx context.Context, userID uuid.UUID, url string) error {
	return r.updateImageURL(ctx, `UPDATE users SET cover_image_url = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, userID, url)
}

func (r *pgUserRepository) updateImageURL(ctx context.Context, query string, userID uuid.UUID, url string) error {
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("userID", userID.String()))

	cmdTag, err := r.db.Exec(ctx, query, url, userID)
	if err != nil {
		r.logger.Error("Failed to update image url in postgres", zap.Error(err), zap.String("userID", userID.String()))
		return fmt.Errorf("failed to update image url: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.Warn("Attempted to update image url for non-existent user", zap.String("userID", userID.String()))
		return models.ErrUserNotFound
	}

	return nil
}
