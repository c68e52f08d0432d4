package receipt

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/natiberk/ministry-hub/internal/http/middlewarectx"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/registration"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Get(ctx context.Context, id string) (*models.Registration, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Registration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ServiceMock) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

type UsersMock struct {
	mock.Mock
}

func (m *UsersMock) CurrentUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type GeneratorMock struct {
	mock.Mock
}

func (m *GeneratorMock) Build(event *models.Event, reg *models.Registration, fallbackName string) ([]byte, error) {
	args := m.Called(event, reg, fallbackName)
	if res := args.Get(0); res != nil {
		return res.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRouter(service *ServiceMock, users *UsersMock, gen *GeneratorMock) http.Handler {
	r := chi.NewRouter()
	r.Get("/registrations/{id}/receipt", New(newNoopLogger(), service, users, gen).ServeHTTP)
	return r
}

// withSessionUID mimics the session middleware populating the context.
func withSessionUID(req *http.Request, uid string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, uid))
}

func TestReceipt_ServesPDF(t *testing.T) {
	service := new(ServiceMock)
	users := new(UsersMock)
	gen := new(GeneratorMock)

	reg := &models.Registration{
		ID:            "reg-1",
		EventID:       "event-1",
		Email:         "abel@example.org",
		PaymentStatus: models.PaymentCompleted,
	}
	event := &models.Event{ID: "event-1", Title: "NLS 2026"}

	service.On("Get", mock.Anything, "reg-1").Return(reg, nil).Once()
	service.On("GetEvent", mock.Anything, "event-1").Return(event, nil).Once()
	users.On("CurrentUser", mock.Anything, "uid-1").
		Return(&models.User{UID: "uid-1", Name: "Abel Tesfaye"}, nil).Once()
	gen.On("Build", event, reg, "Abel Tesfaye").Return([]byte("%PDF-1.3 fake"), nil).Once()

	req := withSessionUID(httptest.NewRequest(http.MethodGet, "/registrations/reg-1/receipt", nil), "uid-1")
	rec := httptest.NewRecorder()
	newRouter(service, users, gen).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "reg-1")
	assert.Equal(t, "%PDF-1.3 fake", rec.Body.String())
}

func TestReceipt_FallsBackToRegistrationEmail(t *testing.T) {
	service := new(ServiceMock)
	users := new(UsersMock)
	gen := new(GeneratorMock)

	reg := &models.Registration{
		ID:            "reg-1",
		EventID:       "event-1",
		Email:         "abel@example.org",
		PaymentStatus: models.PaymentCompleted,
	}
	event := &models.Event{ID: "event-1", Title: "NLS 2026"}

	service.On("Get", mock.Anything, "reg-1").Return(reg, nil).Once()
	service.On("GetEvent", mock.Anything, "event-1").Return(event, nil).Once()
	users.On("CurrentUser", mock.Anything, "uid-1").
		Return(nil, errors.New("storage down")).Once()
	gen.On("Build", event, reg, "abel@example.org").Return([]byte("%PDF-1.3 fake"), nil).Once()

	req := withSessionUID(httptest.NewRequest(http.MethodGet, "/registrations/reg-1/receipt", nil), "uid-1")
	rec := httptest.NewRecorder()
	newRouter(service, users, gen).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	gen.AssertExpectations(t)
}

func TestReceipt_PendingPayment(t *testing.T) {
	service := new(ServiceMock)
	users := new(UsersMock)
	gen := new(GeneratorMock)

	service.On("Get", mock.Anything, "reg-1").Return(&models.Registration{
		ID:            "reg-1",
		EventID:       "event-1",
		PaymentStatus: models.PaymentPending,
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/registrations/reg-1/receipt", nil)
	rec := httptest.NewRecorder()
	newRouter(service, users, gen).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	gen.AssertNotCalled(t, "Build", mock.Anything, mock.Anything, mock.Anything)
}

func TestReceipt_UnknownRegistration(t *testing.T) {
	service := new(ServiceMock)
	users := new(UsersMock)
	gen := new(GeneratorMock)

	service.On("Get", mock.Anything, "ghost").
		Return(nil, registration.ErrRegistrationNotFound).Once()

	req := httptest.NewRequest(http.MethodGet, "/registrations/ghost/receipt", nil)
	rec := httptest.NewRecorder()
	newRouter(service, users, gen).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
