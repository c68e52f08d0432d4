package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	var user *models.User
	if res := args.Get(1); res != nil {
		user = res.(*models.User)
	}
	return args.String(0), user, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler_SetsSessionCookie(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service, 168*time.Hour, true)

	service.On("Login", mock.Anything, "admin@example.org", "password123").
		Return("signed-token", &models.User{
			UID:   "uid-1",
			Name:  "Admin",
			Email: "admin@example.org",
			Role:  models.RoleAdmin,
		}, nil).Once()

	body, err := json.Marshal(Request{Email: "admin@example.org", Password: "password123"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, middlewarectx.SessionCookie, cookie.Name)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)

	var resp struct {
		Status string         `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "uid-1", resp.Data["uid"])
	assert.NotContains(t, resp.Data, "password_hash")
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service, 168*time.Hour, true)

	service.On("Login", mock.Anything, "admin@example.org", "wrongpass").
		Return("", nil, auth.ErrInvalidCredentials).Once()

	body, _ := json.Marshal(Request{Email: "admin@example.org", Password: "wrongpass"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginHandler_ValidationError(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service, 168*time.Hour, true)

	body, _ := json.Marshal(Request{Email: "not-an-email", Password: "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	service.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginHandler_InvalidJSON(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service, 168*time.Hour, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("not a json")))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
