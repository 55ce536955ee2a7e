package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "created_at"}

func setupUserRepo(t *testing.T) (pgxmock.PgxPoolIface, *repository.UserRepository) {
	t.Helper()
	mockDb, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mockDb, repository.NewUserRepository(mockDb)
}

func TestCreateUser(t *testing.T) {
	t.Run("inserts with generated id and timestamp", func(t *testing.T) {
		mockDb, repo := setupUserRepo(t)
		defer mockDb.Close()

		mockDb.ExpectExec(`INSERT INTO users`).
			WithArgs(pgxmock.AnyArg(), "Jane Doe", "jane@example.com", "hash", models.RoleUser, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		user, err := repo.CreateUser(context.Background(), &models.User{
			Name:         "Jane Doe",
			Email:        "jane@example.com",
			PasswordHash: "hash",
			Role:         models.RoleUser,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
		assert.NoError(t, mockDb.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockDb, repo := setupUserRepo(t)
		defer mockDb.Close()

		mockDb.ExpectExec(`INSERT INTO users`).
			WithArgs(pgxmock.AnyArg(), "Jane Doe", "jane@example.com", "hash", models.RoleUser, pgxmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		user, err := repo.CreateUser(context.Background(), &models.User{
			Name:         "Jane Doe",
			Email:        "jane@example.com",
			PasswordHash: "hash",
			Role:         models.RoleUser,
		})
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)
		assert.Nil(t, user)
	})
}

func TestGetUser(t *testing.T) {
	userID := uuid.New()
	created := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("by email", func(t *testing.T) {
		mockDb, repo := setupUserRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`WHERE email = \$1`).
			WithArgs("jane@example.com").
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(userID, "Jane Doe", "jane@example.com", "hash", models.RoleAdmin, created))

		user, err := repo.GetUserByEmail(context.Background(), "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("by id", func(t *testing.T) {
		mockDb, repo := setupUserRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`WHERE id = \$1`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(userColumns).
				AddRow(userID, "Jane Doe", "jane@example.com", "hash", models.RoleUser, created))

		user, err := repo.GetUserByID(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", user.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockDb, repo := setupUserRepo(t)
		defer mockDb.Close()

		mockDb.ExpectQuery(`WHERE email = \$1`).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		user, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
		assert.Nil(t, user)
	})
}
