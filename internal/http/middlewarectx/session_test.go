package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/natiberk/ministry-hub/internal/lib/jwt"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/policy"
)

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) CurrentUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func okHandler(captured *context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			*captured = r.Context()
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware_ValidCookie(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("uid-1", "admin@example.org", models.RoleAdmin)
	require.NoError(t, err)

	var captured context.Context
	handler := SessionMiddleware(maker, noopLogger())(okHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", captured.Value(UserUID))
	assert.Equal(t, models.RoleAdmin, captured.Value(UserRole))
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)
	handler := SessionMiddleware(maker, noopLogger())(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_ExpiredToken(t *testing.T) {
	expired := jwt.NewMaker("test-secret", -time.Hour)
	token, err := expired.GenerateToken("uid-1", "admin@example.org", models.RoleAdmin)
	require.NoError(t, err)

	maker := jwt.NewMaker("test-secret", time.Hour)
	handler := SessionMiddleware(maker, noopLogger())(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission_Allowed(t *testing.T) {
	users := new(MockUserProvider)
	users.On("CurrentUser", mock.Anything, "uid-1").Return(&models.User{
		UID:  "uid-1",
		Role: models.RoleStaff,
		Permissions: map[string]models.PermissionSet{
			"events": {Create: true},
		},
	}, nil)

	var captured context.Context
	handler := RequirePermission(users, policy.ResourceEvents, policy.ActionCreate, noopLogger())(okHandler(&captured))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/events", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserUID, "uid-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	account, ok := AccountFromContext(captured)
	require.True(t, ok)
	assert.Equal(t, "uid-1", account.UID)
}

func TestRequirePermission_Denied(t *testing.T) {
	users := new(MockUserProvider)
	users.On("CurrentUser", mock.Anything, "uid-1").Return(&models.User{
		UID:         "uid-1",
		Role:        models.RoleStaff,
		Permissions: map[string]models.PermissionSet{},
	}, nil)

	handler := RequirePermission(users, policy.ResourceEvents, policy.ActionDelete, noopLogger())(okHandler(nil))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/events/e1", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserUID, "uid-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequirePermission_UnknownAccount(t *testing.T) {
	users := new(MockUserProvider)
	users.On("CurrentUser", mock.Anything, "ghost").Return(nil, errors.New("not found"))

	handler := RequirePermission(users, policy.ResourceEvents, policy.ActionRead, noopLogger())(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/events", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserUID, "ghost"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserManager_RejectsStaff(t *testing.T) {
	users := new(MockUserProvider)
	users.On("CurrentUser", mock.Anything, "uid-1").Return(&models.User{
		UID:  "uid-1",
		Role: models.RoleStaff,
	}, nil)

	handler := RequireUserManager(users, noopLogger())(okHandler(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req = req.WithContext(context.WithValue(req.Context(), UserUID, "uid-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := rate.NewLimiter(rate.Limit(0), 1)
	limiter.Allow() // drain the single token

	handler := RateLimitMiddleware(limiter, noopLogger())(okHandler(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/e1/register", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
