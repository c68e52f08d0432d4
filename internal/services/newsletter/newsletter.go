// Package newsletter manages newsletter drafts, the subscriber list, and
// queueing send jobs to the delivery worker.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/rabbitmq"
	"github.com/natiberk/ministry-hub/internal/storage/repository"
)

var (
	// ErrNewsletterNotFound reports an unknown newsletter ID.
	ErrNewsletterNotFound = errors.New("newsletter not found")
	// ErrAlreadySent rejects re-sending a sent newsletter.
	ErrAlreadySent = errors.New("newsletter already sent")
)

type Storage interface {
	CreateNewsletter(ctx context.Context, n models.Newsletter) (string, error)
	GetNewsletter(ctx context.Context, id string) (*models.Newsletter, error)
	ListNewsletters(ctx context.Context) ([]*models.Newsletter, error)
	MarkNewsletterSent(ctx context.Context, id string) (int, error)
	RemoveNewsletter(ctx context.Context, id string) (int, error)
	AddSubscriber(ctx context.Context, email string) error
	ListSubscribers(ctx context.Context) ([]*models.Subscriber, error)
	RemoveSubscriber(ctx context.Context, id int) (int, error)
}

// Publisher enqueues one delivery job per subscriber.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// AMQPPublisher adapts an amqp.Channel to Publisher.
type AMQPPublisher struct {
	Ch *amqp.Channel
}

func (p *AMQPPublisher) Publish(exchange, routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.Ch, exchange, routingKey, message)
}

type NewsletterService struct {
	storage   Storage
	publisher Publisher
	log       *slog.Logger
}

func NewNewsletterService(storage Storage, publisher Publisher, log *slog.Logger) *NewsletterService {
	return &NewsletterService{storage: storage, publisher: publisher, log: log}
}

func (s *NewsletterService) Create(ctx context.Context, n models.Newsletter) (string, error) {
	const op = "newsletter.Create"

	n.ID = uuid.New().String()
	n.Status = models.NewsletterDraft
	if _, err := s.storage.CreateNewsletter(ctx, n); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return n.ID, nil
}

func (s *NewsletterService) List(ctx context.Context) ([]*models.Newsletter, error) {
	const op = "newsletter.List"

	newsletters, err := s.storage.ListNewsletters(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return newsletters, nil
}

func (s *NewsletterService) Remove(ctx context.Context, id string) error {
	const op = "newsletter.Remove"

	n, err := s.storage.RemoveNewsletter(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrNewsletterNotFound
	}
	return nil
}

// Send marks the newsletter sent and queues one delivery job per
// subscriber. Jobs that fail to publish are logged and skipped; delivery
// is at-most-once per subscriber from this side.
func (s *NewsletterService) Send(ctx context.Context, id string) (int, error) {
	const op = "newsletter.Send"

	newsletter, err := s.storage.GetNewsletter(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNewsletterNotFound
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if newsletter.Status == models.NewsletterSent {
		return 0, ErrAlreadySent
	}

	subscribers, err := s.storage.ListSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.storage.MarkNewsletterSent(ctx, id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	queued := 0
	for _, sub := range subscribers {
		job := models.NewsletterJob{
			Email:   sub.Email,
			Subject: newsletter.Subject,
			Body:    newsletter.Body,
		}
		if err := s.publisher.Publish(rabbitmq.Exchange, rabbitmq.SendRoutingKey, job); err != nil {
			s.log.Error("failed to queue newsletter job",
				slog.String("newsletter_id", id),
				slog.String("email", sub.Email),
				sl.Err(err))
			continue
		}
		queued++
	}

	s.log.Info("newsletter queued",
		slog.String("newsletter_id", id),
		slog.Int("subscribers", queued))
	return queued, nil
}

func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	const op = "newsletter.Subscribe"

	if err := s.storage.AddSubscriber(ctx, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *NewsletterService) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	const op = "newsletter.ListSubscribers"

	subs, err := s.storage.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

func (s *NewsletterService) Unsubscribe(ctx context.Context, id int) error {
	const op = "newsletter.Unsubscribe"

	n, err := s.storage.RemoveSubscriber(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
