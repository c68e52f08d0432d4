package event

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/natiberk/ministry-hub/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateEvent(ctx context.Context, event models.Event) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListEvents(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Event), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdateEvent(ctx context.Context, event models.Event) (int, error) {
	args := m.Called(ctx, event)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) RemoveEvent(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCreate_AssignsIDAndPersists(t *testing.T) {
	storage := new(MockStorage)
	service := NewEventService(storage, nil, testLogger())

	storage.On("CreateEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		return e.ID != "" && e.Title == "NLS"
	})).Return("some-id", nil)

	id, err := service.Create(context.Background(), models.Event{
		Title:  "NLS",
		Date:   time.Now().AddDate(0, 1, 0),
		IsPaid: true,
		Price:  500,
		FormFields: []models.FormField{
			{Label: "Full Name", Type: models.FieldText, Required: true},
			{Label: "Campus", Type: models.FieldSelect, Options: []string{"AAU", "AASTU"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "some-id", id)

	storage.AssertExpectations(t)
}

func TestCreate_RejectsDuplicateLabels(t *testing.T) {
	storage := new(MockStorage)
	service := NewEventService(storage, nil, testLogger())

	_, err := service.Create(context.Background(), models.Event{
		Title: "NLS",
		FormFields: []models.FormField{
			{Label: "Full Name", Type: models.FieldText},
			{Label: "Full Name", Type: models.FieldText},
		},
	})

	assert.ErrorIs(t, err, ErrDuplicateLabel)
	storage.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestUpdate_RejectsDuplicateLabels(t *testing.T) {
	storage := new(MockStorage)
	service := NewEventService(storage, nil, testLogger())

	_, err := service.Update(context.Background(), models.Event{
		ID: "event-1",
		FormFields: []models.FormField{
			{Label: "Phone", Type: models.FieldNumber},
			{Label: "Phone", Type: models.FieldNumber},
		},
	})

	assert.ErrorIs(t, err, ErrDuplicateLabel)
}

func TestList_WithoutCache(t *testing.T) {
	storage := new(MockStorage)
	service := NewEventService(storage, nil, testLogger())

	expected := []*models.Event{{ID: "event-1", Title: "NLS"}}
	storage.On("ListEvents", mock.Anything).Return(expected, nil)

	got, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}
