package create

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

	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/services/event"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, e models.Event) (string, error) {
	args := m.Called(ctx, e)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func validRequest() Request {
	return Request{
		Title:  "NLS 2026",
		Date:   time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC),
		IsPaid: true,
		Price:  500,
		FormFields: []models.FormField{
			{Label: "Full Name", Type: models.FieldText, Required: true},
		},
	}
}

func TestCreateEvent_Success(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service)

	service.On("Create", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		return e.Title == "NLS 2026" && e.IsPaid && e.Price == 500
	})).Return("event-1", nil).Once()

	body, err := json.Marshal(validRequest())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "event-1")
}

func TestCreateEvent_PaidWithoutPrice(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service)

	r := validRequest()
	r.Price = 0

	body, _ := json.Marshal(r)
	req := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	service.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateEvent_DuplicateLabels(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service)

	service.On("Create", mock.Anything, mock.Anything).
		Return("", event.ErrDuplicateLabel).Once()

	body, _ := json.Marshal(validRequest())
	req := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unique")
}

func TestCreateEvent_MissingFormFields(t *testing.T) {
	service := new(ServiceMock)
	handler := New(newNoopLogger(), service)

	r := validRequest()
	r.FormFields = nil

	body, _ := json.Marshal(r)
	req := httptest.NewRequest(http.MethodPost, "/admin/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
