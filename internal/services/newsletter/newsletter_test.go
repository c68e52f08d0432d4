package newsletter

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/rabbitmq"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateNewsletter(ctx context.Context, n models.Newsletter) (string, error) {
	args := m.Called(ctx, n)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetNewsletter(ctx context.Context, id string) (*models.Newsletter, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Newsletter), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListNewsletters(ctx context.Context) ([]*models.Newsletter, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Newsletter), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) MarkNewsletterSent(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) RemoveNewsletter(ctx context.Context, id string) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) AddSubscriber(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockStorage) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.([]*models.Subscriber), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) RemoveSubscriber(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestSend_QueuesJobPerSubscriber(t *testing.T) {
	storage := new(MockStorage)
	publisher := new(MockPublisher)
	service := NewNewsletterService(storage, publisher, testLogger())

	storage.On("GetNewsletter", mock.Anything, "nl-1").Return(&models.Newsletter{
		ID:      "nl-1",
		Subject: "September Update",
		Body:    "Hello campuses",
		Status:  models.NewsletterDraft,
	}, nil)
	storage.On("ListSubscribers", mock.Anything).Return([]*models.Subscriber{
		{ID: 1, Email: "a@example.org"},
		{ID: 2, Email: "b@example.org"},
	}, nil)
	storage.On("MarkNewsletterSent", mock.Anything, "nl-1").Return(1, nil)
	publisher.On("Publish", rabbitmq.Exchange, rabbitmq.SendRoutingKey,
		models.NewsletterJob{Email: "a@example.org", Subject: "September Update", Body: "Hello campuses"}).Return(nil)
	publisher.On("Publish", rabbitmq.Exchange, rabbitmq.SendRoutingKey,
		models.NewsletterJob{Email: "b@example.org", Subject: "September Update", Body: "Hello campuses"}).Return(nil)

	queued, err := service.Send(context.Background(), "nl-1")
	require.NoError(t, err)
	assert.Equal(t, 2, queued)

	storage.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestSend_RejectsAlreadySent(t *testing.T) {
	storage := new(MockStorage)
	publisher := new(MockPublisher)
	service := NewNewsletterService(storage, publisher, testLogger())

	storage.On("GetNewsletter", mock.Anything, "nl-1").Return(&models.Newsletter{
		ID:     "nl-1",
		Status: models.NewsletterSent,
	}, nil)

	_, err := service.Send(context.Background(), "nl-1")
	assert.ErrorIs(t, err, ErrAlreadySent)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestSend_SkipsFailedPublishes(t *testing.T) {
	storage := new(MockStorage)
	publisher := new(MockPublisher)
	service := NewNewsletterService(storage, publisher, testLogger())

	storage.On("GetNewsletter", mock.Anything, "nl-1").Return(&models.Newsletter{
		ID:     "nl-1",
		Status: models.NewsletterDraft,
	}, nil)
	storage.On("ListSubscribers", mock.Anything).Return([]*models.Subscriber{
		{ID: 1, Email: "a@example.org"},
		{ID: 2, Email: "b@example.org"},
	}, nil)
	storage.On("MarkNewsletterSent", mock.Anything, "nl-1").Return(1, nil)
	publisher.On("Publish", mock.Anything, mock.Anything,
		mock.MatchedBy(func(j models.NewsletterJob) bool { return j.Email == "a@example.org" })).
		Return(errors.New("channel closed"))
	publisher.On("Publish", mock.Anything, mock.Anything,
		mock.MatchedBy(func(j models.NewsletterJob) bool { return j.Email == "b@example.org" })).
		Return(nil)

	queued, err := service.Send(context.Background(), "nl-1")
	require.NoError(t, err)
	assert.Equal(t, 1, queued)
}

func TestCreate_StartsAsDraft(t *testing.T) {
	storage := new(MockStorage)
	service := NewNewsletterService(storage, new(MockPublisher), testLogger())

	storage.On("CreateNewsletter", mock.Anything, mock.MatchedBy(func(n models.Newsletter) bool {
		return n.ID != "" && n.Status == models.NewsletterDraft
	})).Return("ignored", nil)

	id, err := service.Create(context.Background(), models.Newsletter{Subject: "Hi"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}
