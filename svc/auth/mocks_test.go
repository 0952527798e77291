package auth_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/careeros/backend/svc/auth"
)

// MockStorage is a mock implementation of Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(ctx context.Context, user auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(ctx context.Context, id string) (auth.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auth.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(auth.User), args.Error(1)
}

// MockDenylist is a mock implementation of Denylist.
type MockDenylist struct {
	mock.Mock
}

func (m *MockDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *MockDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
