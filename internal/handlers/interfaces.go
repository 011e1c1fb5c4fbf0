package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/milena/wayfare-api/internal/models"
	"github.com/milena/wayfare-api/internal/repository"
	"github.com/milena/wayfare-api/internal/services"
)

// ResourceRepositoryInterface defines the repository operations handlers use.
type ResourceRepositoryInterface interface {
	Create(ctx context.Context, payload repository.Record, createdBy *uuid.UUID) (repository.Record, error)
	FindByID(ctx context.Context, id uuid.UUID) (repository.Record, error)
	FindOneBy(ctx context.Context, wire string, value any, visibleOnly bool) (repository.Record, error)
	FindAll(ctx context.Context, f repository.Filter) ([]repository.Record, error)
	Update(ctx context.Context, id uuid.UUID, payload repository.Record) (repository.Record, error)
	Delete(ctx context.Context, id uuid.UUID) (repository.Record, error)
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Create(ctx context.Context, email, name, password, role string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email, role string) (*services.TokenPair, error)
	ValidateRefreshToken(tokenString string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendEnquiryNotification(to string, n services.EnquiryNotification) error
}
