package testutil

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/milena/wayfare-api/internal/assets"
	"github.com/milena/wayfare-api/internal/models"
	"github.com/milena/wayfare-api/internal/repository"
	"github.com/milena/wayfare-api/internal/services"
)

// MockResourceRepository mocks the generic resource repository
type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, payload repository.Record, createdBy *uuid.UUID) (repository.Record, error) {
	args := m.Called(ctx, payload, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

func (m *MockResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (repository.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

func (m *MockResourceRepository) FindOneBy(ctx context.Context, wire string, value any, visibleOnly bool) (repository.Record, error) {
	args := m.Called(ctx, wire, value, visibleOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

func (m *MockResourceRepository) FindAll(ctx context.Context, f repository.Filter) ([]repository.Record, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.Record), args.Error(1)
}

func (m *MockResourceRepository) Update(ctx context.Context, id uuid.UUID, payload repository.Record) (repository.Record, error) {
	args := m.Called(ctx, id, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

func (m *MockResourceRepository) Delete(ctx context.Context, id uuid.UUID) (repository.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.Record), args.Error(1)
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, email, name, password, role string) (*models.User, error) {
	args := m.Called(ctx, email, name, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendEnquiryNotification(to string, n services.EnquiryNotification) error {
	args := m.Called(to, n)
	return args.Error(0)
}

// RecordingStore is an in-memory asset store that records deletions and can
// be primed to fail on specific handles.
type RecordingStore struct {
	mu sync.Mutex

	UploadRef assets.Ref
	UploadErr error
	FailOn    map[string]error

	Deleted  []string
	Uploaded int
}

func (s *RecordingStore) Upload(ctx context.Context, r io.Reader, kind assets.Kind) (assets.Ref, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Uploaded++
	if s.UploadErr != nil {
		return assets.Ref{}, s.UploadErr
	}
	return s.UploadRef, nil
}

func (s *RecordingStore) Delete(ctx context.Context, publicID string, kind assets.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Deleted = append(s.Deleted, publicID)
	if err, ok := s.FailOn[publicID]; ok {
		return err
	}
	return nil
}

// DeletedHandles returns a copy of the recorded deletion handles.
func (s *RecordingStore) DeletedHandles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Deleted...)
}
