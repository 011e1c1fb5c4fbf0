package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/milena/wayfare-api/internal/database"
	"github.com/milena/wayfare-api/internal/models"
)

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewUserService(&database.DB{Pool: mock}), mock
}

func userColumns() []string {
	return []string{"id", "email", "name", "password_hash", "role", "created_at", "updated_at"}
}

func TestUserService_Create(t *testing.T) {
	svc, mock := setupUserService(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("admin@example.com", "Admin", pgxmock.AnyArg(), models.RoleAdmin).
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "admin@example.com", "Admin", "hashed", models.RoleAdmin, now, now))

	user, err := svc.Create(context.Background(), "admin@example.com", "Admin", "s3cret", models.RoleAdmin)

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userColumns()))

	_, err := svc.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate(t *testing.T) {
	svc, mock := setupUserService(t)
	id := uuid.New()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "admin@example.com", "Admin", string(hash), models.RoleAdmin, now, now))

	user, err := svc.Authenticate(context.Background(), "admin@example.com", "correct-password")

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_WrongPassword(t *testing.T) {
	svc, mock := setupUserService(t)
	id := uuid.New()
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("admin@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).
			AddRow(id, "admin@example.com", "Admin", string(hash), models.RoleAdmin, now, now))

	_, err = svc.Authenticate(context.Background(), "admin@example.com", "wrong-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Authenticate_UnknownEmail(t *testing.T) {
	svc, mock := setupUserService(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()))

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever")

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Delete(t *testing.T) {
	svc, mock := setupUserService(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.Delete(context.Background(), id)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Delete_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.Delete(context.Background(), id)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
