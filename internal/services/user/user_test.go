package user

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/natiberk/ministry-hub/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdateUser(ctx context.Context, user models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) RemoveUser(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func admin() *models.User {
	return &models.User{UID: "admin-1", Role: models.RoleAdmin}
}

func TestList_RejectsStaff(t *testing.T) {
	storage := new(MockStorage)
	service := NewUserService(storage, testLogger())

	_, err := service.List(context.Background(), &models.User{UID: "staff-1", Role: models.RoleStaff})
	assert.ErrorIs(t, err, ErrForbidden)
	storage.AssertNotCalled(t, "ListUsers", mock.Anything)
}

func TestRemove_RejectsProtectedAccount(t *testing.T) {
	storage := new(MockStorage)
	service := NewUserService(storage, testLogger())

	storage.On("GetUser", mock.Anything, "root-1").Return(&models.User{
		UID:               "root-1",
		Role:              models.RoleSuperadmin,
		IsSystemProtected: true,
	}, nil)

	err := service.Remove(context.Background(), admin(), "root-1")
	assert.ErrorIs(t, err, ErrForbidden)
	storage.AssertNotCalled(t, "RemoveUser", mock.Anything, mock.Anything)
}

func TestRemove_DeletesRegularAccount(t *testing.T) {
	storage := new(MockStorage)
	service := NewUserService(storage, testLogger())

	storage.On("GetUser", mock.Anything, "staff-1").Return(&models.User{
		UID:  "staff-1",
		Role: models.RoleStaff,
	}, nil)
	storage.On("RemoveUser", mock.Anything, "staff-1").Return(1, nil)

	err := service.Remove(context.Background(), admin(), "staff-1")
	require.NoError(t, err)
	storage.AssertExpectations(t)
}

func TestUpdate_KeepsPasswordAndProtectionFlag(t *testing.T) {
	storage := new(MockStorage)
	service := NewUserService(storage, testLogger())

	storage.On("GetUser", mock.Anything, "staff-1").Return(&models.User{
		UID:          "staff-1",
		Role:         models.RoleStaff,
		PasswordHash: "$2a$10$stored",
	}, nil)
	storage.On("UpdateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.PasswordHash == "$2a$10$stored" && !u.IsSystemProtected
	})).Return(1, nil)

	err := service.Update(context.Background(), admin(), models.User{
		UID:          "staff-1",
		Name:         "New Name",
		Role:         models.RoleAdmin,
		PasswordHash: "attacker-controlled",
	})
	require.NoError(t, err)
	storage.AssertExpectations(t)
}
