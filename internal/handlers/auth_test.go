package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/milena/wayfare-api/internal/middleware"
	"github.com/milena/wayfare-api/internal/models"
	"github.com/milena/wayfare-api/internal/services"
	"github.com/milena/wayfare-api/pkg/dto"
	"github.com/milena/wayfare-api/tests/testutil"
)

func setupAuthTest(t *testing.T) (*testutil.MockUserService, *testutil.MockTokenService, *AuthHandler, *services.JWTService) {
	t.Helper()
	mockUsers := new(testutil.MockUserService)
	mockTokens := new(testutil.MockTokenService)
	jwtSvc := newHandlerJWTService()
	handler := NewAuthHandler(mockUsers, mockTokens, jwtSvc)
	return mockUsers, mockTokens, handler, jwtSvc
}

func testUser(role string) *models.User {
	return &models.User{
		ID:        uuid.New(),
		Email:     "admin@example.com",
		Name:      "Admin",
		Role:      role,
		CreatedAt: time.Now(),
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUsers, mockTokens, handler, jwtSvc := setupAuthTest(t)
	user := testUser(models.RoleAdmin)

	mockUsers.On("Authenticate", mock.Anything, "admin@example.com", "s3cret").Return(user, nil)
	mockTokens.On("StoreRefreshToken", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "s3cret"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, user.ID, response.User.ID)
	assert.Equal(t, models.RoleAdmin, response.User.Role)

	// The issued access token carries the role.
	claims, err := jwtSvc.ValidateAccessToken(response.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockUsers, _, handler, _ := setupAuthTest(t)

	mockUsers.On("Authenticate", mock.Anything, "admin@example.com", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
	mockUsers.AssertExpectations(t)
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	_, _, handler, _ := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_RefreshToken_RotatesToken(t *testing.T) {
	mockUsers, mockTokens, handler, jwtSvc := setupAuthTest(t)
	user := testUser(models.RoleMainAdmin)

	pair, err := jwtSvc.GenerateTokenPair(user.ID, user.Email, user.Role)
	require.NoError(t, err)
	tokenHash := services.HashToken(pair.RefreshToken)

	mockTokens.On("ValidateRefreshToken", mock.Anything, tokenHash).Return(user.ID, nil)
	mockUsers.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	mockTokens.On("RevokeRefreshToken", mock.Anything, tokenHash).Return(nil)
	mockTokens.On("StoreRefreshToken", mock.Anything, user.ID, mock.Anything, mock.Anything).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.RefreshToken)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, response.RefreshToken)

	mockUsers.AssertExpectations(t)
	mockTokens.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_UnknownToken(t *testing.T) {
	_, mockTokens, handler, jwtSvc := setupAuthTest(t)
	userID := uuid.New()

	pair, err := jwtSvc.GenerateTokenPair(userID, "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	// The JWT checks out but the stored hash is gone (revoked or rotated).
	mockTokens.On("ValidateRefreshToken", mock.Anything, services.HashToken(pair.RefreshToken)).
		Return(uuid.Nil, assert.AnError)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.RefreshToken)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: pair.RefreshToken})
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockTokens.AssertExpectations(t)
}

func TestAuthHandler_RefreshToken_Garbage(t *testing.T) {
	_, _, handler, _ := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.RefreshToken)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: "garbage"})
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_RevokesPresentedToken(t *testing.T) {
	_, mockTokens, handler, _ := setupAuthTest(t)

	mockTokens.On("RevokeRefreshToken", mock.Anything, services.HashToken("some-refresh-token")).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/logout", handler.Logout)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: "some-refresh-token"})
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTokens.AssertExpectations(t)
}

func TestAuthHandler_LogoutAll(t *testing.T) {
	_, mockTokens, handler, jwtSvc := setupAuthTest(t)
	userID := uuid.New()

	mockTokens.On("RevokeAllUserTokens", mock.Anything, userID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/auth/logout-all", handler.LogoutAll)

	token := generateTestToken(t, jwtSvc, userID, "admin@example.com", models.RoleAdmin)
	req := httptest.NewRequest(http.MethodPost, "/auth/logout-all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTokens.AssertExpectations(t)
}
