package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/milena/wayfare-api/internal/database"
	"github.com/milena/wayfare-api/internal/models"
	"github.com/milena/wayfare-api/internal/repository"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
		Name:  fmt.Sprintf("Test User %d", f.counter),
		Role:  models.RoleAdmin,
	}
	password := "test-password"

	for _, opt := range opts {
		opt(user, &password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, name, password_hash, role, created_at, updated_at
	`, user.Email, user.Name, string(hash), user.Role).Scan(
		&user.ID, &user.Email, &user.Name, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User, *string)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User, _ *string) {
		u.Email = email
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User, _ *string) {
		u.Role = role
	}
}

// WithPassword sets the user's login password
func WithPassword(password string) UserOption {
	return func(_ *models.User, p *string) {
		*p = password
	}
}

// CreateTrip creates a test trip through the repository
func (f *Fixtures) CreateTrip(t *testing.T, createdBy uuid.UUID, overrides repository.Record) repository.Record {
	t.Helper()
	f.counter++

	payload := repository.Record{
		"title":    fmt.Sprintf("Test Trip %d", f.counter),
		"location": "Kyoto, Japan",
		"duration": "7 days",
		"price":    "1200",
		"slug":     fmt.Sprintf("test-trip-%d", f.counter),
	}
	for k, v := range overrides {
		payload[k] = v
	}

	repo := repository.New(f.db, repository.Trips)
	record, err := repo.Create(context.Background(), payload, &createdBy)
	if err != nil {
		t.Fatalf("failed to create trip: %v", err)
	}
	return record
}

// CreateDestination creates a test destination through the repository
func (f *Fixtures) CreateDestination(t *testing.T, createdBy uuid.UUID, overrides repository.Record) repository.Record {
	t.Helper()
	f.counter++

	payload := repository.Record{
		"name": fmt.Sprintf("Test Destination %d", f.counter),
	}
	for k, v := range overrides {
		payload[k] = v
	}

	repo := repository.New(f.db, repository.Destinations)
	record, err := repo.Create(context.Background(), payload, &createdBy)
	if err != nil {
		t.Fatalf("failed to create destination: %v", err)
	}
	return record
}

// CreateEnquiry creates a test enquiry through the repository
func (f *Fixtures) CreateEnquiry(t *testing.T, overrides repository.Record) repository.Record {
	t.Helper()
	f.counter++

	payload := repository.Record{
		"name":  fmt.Sprintf("Visitor %d", f.counter),
		"email": fmt.Sprintf("visitor%d@example.com", f.counter),
	}
	for k, v := range overrides {
		payload[k] = v
	}

	repo := repository.New(f.db, repository.Enquiries)
	record, err := repo.Create(context.Background(), payload, nil)
	if err != nil {
		t.Fatalf("failed to create enquiry: %v", err)
	}
	return record
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
