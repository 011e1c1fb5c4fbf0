package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milena/wayfare-api/internal/models"
	"github.com/milena/wayfare-api/internal/services"
	"github.com/milena/wayfare-api/tests/testutil"
)

func TestUserService_Integration_CreateAndAuthenticate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	created, err := svc.Create(ctx, "admin@example.com", "Admin", "s3cret-password", models.RoleAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "s3cret-password", created.PasswordHash)

	user, err := svc.Authenticate(ctx, "admin@example.com", "s3cret-password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Authenticate(ctx, "admin@example.com", "wrong-password")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserService_Integration_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)

	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err := svc.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestTokenService_Integration_RefreshTokenLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	hash := services.HashToken("some-refresh-token")

	require.NoError(t, svc.StoreRefreshToken(ctx, user.ID, hash, time.Now().Add(time.Hour)))

	userID, err := svc.ValidateRefreshToken(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	require.NoError(t, svc.RevokeRefreshToken(ctx, hash))

	_, err = svc.ValidateRefreshToken(ctx, hash)
	assert.Error(t, err)
}

func TestTokenService_Integration_CleanupExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	fixtures := testutil.NewFixtures(tdb.DB)
	svc := services.NewTokenService(tdb.DB)
	ctx := context.Background()

	user := fixtures.CreateUser(t)
	liveHash := services.HashToken("live-token")
	deadHash := services.HashToken("dead-token")

	fixtures.CreateRefreshToken(t, user.ID, liveHash, time.Now().Add(time.Hour))
	fixtures.CreateRefreshToken(t, user.ID, deadHash, time.Now().Add(-time.Hour))

	require.NoError(t, svc.CleanupExpired(ctx))

	_, err := svc.ValidateRefreshToken(ctx, liveHash)
	assert.NoError(t, err)

	_, err = svc.ValidateRefreshToken(ctx, deadHash)
	assert.Error(t, err)
}
