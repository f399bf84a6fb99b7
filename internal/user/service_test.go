package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dipika-maharjan/tripwise-backend/internal/auth"
)

type mockRepository struct{ mock.Mock }

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, u *User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	return m.Called(ctx, id, t).Error(0)
}

func newTestService(repo Repository) Service {
	return NewService(repo, auth.NewBcryptPasswordHasher(4))
}

func TestRegisterNormalizesEmail(t *testing.T) {
	repo := new(mockRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)

	svc := newTestService(repo)

	u, err := svc.Register(context.Background(), "  Guest@Example.COM ", "supersecret", "Guest")
	require.NoError(t, err)

	assert.Equal(t, "guest@example.com", u.Email)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "supersecret", u.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(new(mockRepository))

	_, err := svc.Register(context.Background(), "   ", "supersecret", "")
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(context.Background(), "guest@example.com", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLoginWrongPassword(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	repo := new(mockRepository)
	repo.On("GetByEmail", mock.Anything, "guest@example.com").Return(&User{
		ID:           "u-1",
		Email:        "guest@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}, nil)

	svc := NewService(repo, hasher)

	_, err = svc.Login(context.Background(), "guest@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	repo := new(mockRepository)
	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrNotFound)

	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	hasher := auth.NewBcryptPasswordHasher(4)
	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	repo := new(mockRepository)
	repo.On("GetByEmail", mock.Anything, "guest@example.com").Return(&User{
		ID:           "u-1",
		Email:        "guest@example.com",
		PasswordHash: hash,
		IsActive:     false,
	}, nil)

	svc := NewService(repo, hasher)

	_, err = svc.Login(context.Background(), "guest@example.com", "correct-password")
	assert.ErrorIs(t, err, ErrInactiveUser)
}
