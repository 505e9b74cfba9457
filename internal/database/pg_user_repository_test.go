package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nitesh-Kaushik/backend/internal/models"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *pgUserRepository) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	repo := &pgUserRepository{db: mockPool, logger: zap.NewNop()}
	return mockPool, repo
}

func userRows(u *models.User) *pgxmock.Rows {
	cover := u.CoverImageURL
	return pgxmock.NewRows([]string{
		"id", "username", "full_name", "email", "password_hash",
		"avatar_url", "cover_image_url", "refresh_token", "created_at", "updated_at",
	}).AddRow(u.ID, u.Username, u.FullName, u.Email, u.PasswordHash,
		u.AvatarURL, cover, u.RefreshToken, u.CreatedAt, u.UpdatedAt)
}

func sampleUser() *models.User {
	now := time.Now()
	return &models.User{
		ID:           uuid.New(),
		Username:     "alice",
		FullName:     "Alice Example",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		AvatarURL:    "https://cdn.example.com/a.png",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful insert populates generated fields", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		user := sampleUser()
		id := uuid.New()
		now := time.Now()

		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Username, user.FullName, user.Email, user.PasswordHash, user.AvatarURL, user.CoverImageURL).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

		err := repo.CreateUser(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("Duplicate username maps to ErrUserAlreadyExists", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		user := sampleUser()

		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Username, user.FullName, user.Email, user.PasswordHash, user.AvatarURL, user.CoverImageURL).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		err := repo.CreateUser(ctx, user)
		assert.ErrorIs(t, err, models.ErrUserAlreadyExists)
	})

	t.Run("Duplicate email maps to ErrEmailAlreadyExists", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		user := sampleUser()

		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Username, user.FullName, user.Email, user.PasswordHash, user.AvatarURL, user.CoverImageURL).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		err := repo.CreateUser(ctx, user)
		assert.ErrorIs(t, err, models.ErrEmailAlreadyExists)
	})

	t.Run("Other database errors are wrapped", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		user := sampleUser()
		dbErr := errors.New("connection refused")

		mockPool.ExpectQuery(`INSERT INTO users`).
			WithArgs(user.Username, user.FullName, user.Email, user.PasswordHash, user.AvatarURL, user.CoverImageURL).
			WillReturnError(dbErr)

		err := repo.CreateUser(ctx, user)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, models.ErrUserAlreadyExists)
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("GetUserByID returns the scanned record", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		want := sampleUser()

		mockPool.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs(want.ID).
			WillReturnRows(userRows(want))

		got, err := repo.GetUserByID(ctx, want.ID)
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.Username, got.Username)
		assert.Nil(t, got.RefreshToken)
	})

	t.Run("GetUserByLogin matches username or email with one parameter", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		want := sampleUser()

		mockPool.ExpectQuery(`SELECT .+ FROM users WHERE username = \$1 OR email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(userRows(want))

		got, err := repo.GetUserByLogin(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, want.Username, got.Username)
	})

	t.Run("Missing row maps to ErrUserNotFound", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		got, err := repo.GetUserByID(ctx, id)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}

func TestUpdateRefreshToken(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a new token", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		id := uuid.New()
		token := "new-refresh-token"

		mockPool.ExpectExec(`UPDATE users SET refresh_token`).
			WithArgs(&token, id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateRefreshToken(ctx, id, &token)
		require.NoError(t, err)
	})

	t.Run("Nil token clears the column", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectExec(`UPDATE users SET refresh_token`).
			WithArgs((*string)(nil), id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateRefreshToken(ctx, id, nil)
		require.NoError(t, err)
	})

	t.Run("Unknown user maps to ErrUserNotFound", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectExec(`UPDATE users SET refresh_token`).
			WithArgs((*string)(nil), id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateRefreshToken(ctx, id, nil)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}

func TestUpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	mockPool, repo := newMockRepo(t)
	id := uuid.New()

	mockPool.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("$2a$10$newhash", id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdatePasswordHash(ctx, id, "$2a$10$newhash")
	require.NoError(t, err)
}

func TestUpdateImageURLs(t *testing.T) {
	ctx := context.Background()

	t.Run("Avatar URL update", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectExec(`UPDATE users SET avatar_url`).
			WithArgs("https://cdn.example.com/new.png", id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.UpdateAvatarURL(ctx, id, "https://cdn.example.com/new.png")
		require.NoError(t, err)
	})

	t.Run("Cover image update for unknown user", func(t *testing.T) {
		mockPool, repo := newMockRepo(t)
		id := uuid.New()

		mockPool.ExpectExec(`UPDATE users SET cover_image_url`).
			WithArgs("https://cdn.example.com/cover.png", id).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdateCoverImageURL(ctx, id, "https://cdn.example.com/cover.png")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}
