package user

import (
	"context"
	"errors"
	"testing"

	"glamour-be/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, name, email, hashedPassword, role string) (User, error) {
	args := m.Called(ctx, name, email, hashedPassword, role)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "Ada", "ada@example.com", mock.AnythingOfType("string"), "USER").
			Return(User{ID: "user-1", Name: "Ada", Email: "ada@example.com", Role: auth.RoleUser}, nil)

		result := svc.Register(ctx, "Ada", "ada@example.com", "secret123")
		success, ok := result.(AuthSuccess)
		require.True(t, ok, "expected AuthSuccess, got %T", result)
		assert.Equal(t, "user-1", success.User.ID)
		assert.NotEmpty(t, success.Token)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", ctx, "Ada", "ada@example.com", mock.AnythingOfType("string"), "USER").
			Return(User{}, errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		result := svc.Register(ctx, "Ada", "ada@example.com", "secret123")
		failure, ok := result.(AuthFailure)
		require.True(t, ok)
		assert.ErrorIs(t, failure.Err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	ctx := context.Background()

	hashed, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	stored := User{ID: "user-1", Email: "ada@example.com", Password: hashed, Role: auth.RoleUser}

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("FindByEmail", ctx, "ada@example.com").Return(stored, nil)

		result := svc.Login(ctx, "ada@example.com", "secret123")
		success, ok := result.(AuthSuccess)
		require.True(t, ok, "expected AuthSuccess, got %T", result)
		assert.NotEmpty(t, success.Token)

		claims, err := auth.ParseJWT(success.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("FindByEmail", ctx, "ada@example.com").Return(stored, nil)

		result := svc.Login(ctx, "ada@example.com", "wrong")
		failure, ok := result.(AuthFailure)
		require.True(t, ok)
		assert.ErrorIs(t, failure.Err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(User{}, ErrUserNotFound)

		result := svc.Login(ctx, "ghost@example.com", "secret123")
		failure, ok := result.(AuthFailure)
		require.True(t, ok)
		// lookup failures collapse into invalid credentials
		assert.ErrorIs(t, failure.Err, ErrInvalidCredentials)
	})
}

func TestService_GetUser(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("FindByID", ctx, "user-1").Return(User{ID: "user-1", Name: "Ada"}, nil)

	u, err := svc.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)
}
