// Package event contains the business logic for event management: CRUD
// over the storage layer, form-field validation and the cached public
// listing.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/natiberk/ministry-hub/internal/cache"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/models"
)

// ErrDuplicateLabel reports a form with two fields sharing one label.
// Labels are the keys of the answer map, so they must be unique.
var ErrDuplicateLabel = errors.New("duplicate form field label")

const listCacheTTL = 5 * time.Minute

// Storage is the repository contract of the event service.
type Storage interface {
	CreateEvent(ctx context.Context, event models.Event) (string, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]*models.Event, error)
	UpdateEvent(ctx context.Context, event models.Event) (int, error)
	RemoveEvent(ctx context.Context, id string) (int, error)
}

// EventService implements event management.
type EventService struct {
	storage Storage
	cache   *cache.Cache
	log     *slog.Logger
}

// NewEventService creates an EventService.
func NewEventService(storage Storage, cache *cache.Cache, log *slog.Logger) *EventService {
	return &EventService{
		storage: storage,
		cache:   cache,
		log:     log,
	}
}

// Create validates the form and inserts a new event.
func (s *EventService) Create(ctx context.Context, event models.Event) (string, error) {
	const op = "event.Create"

	if err := validateFormFields(event.FormFields); err != nil {
		return "", err
	}
	event.ID = uuid.New().String()

	id, err := s.storage.CreateEvent(ctx, event)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateList()
	return id, nil
}

// Get returns one event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	return s.storage.GetEvent(ctx, id)
}

// List returns all events, served from the cache when possible.
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	const op = "event.List"

	if s.cache != nil {
		var cached []*models.Event
		found, err := s.cache.Get(cache.KeyEventList, &cached)
		if err != nil {
			s.log.Warn("event list cache read failed", sl.Err(err))
		} else if found {
			return cached, nil
		}
	}

	events, err := s.storage.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(cache.KeyEventList, events, listCacheTTL); err != nil {
			s.log.Warn("event list cache write failed", sl.Err(err))
		}
	}
	return events, nil
}

// Update validates the form and overwrites an event. Last write wins.
func (s *EventService) Update(ctx context.Context, event models.Event) (int, error) {
	const op = "event.Update"

	if err := validateFormFields(event.FormFields); err != nil {
		return 0, err
	}

	count, err := s.storage.UpdateEvent(ctx, event)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateList()
	return count, nil
}

// Remove deletes an event with its registrations (cascade).
func (s *EventService) Remove(ctx context.Context, id string) (int, error) {
	const op = "event.Remove"

	count, err := s.storage.RemoveEvent(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateList()
	return count, nil
}

func (s *EventService) invalidateList() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(cache.KeyEventList); err != nil {
		s.log.Warn("event list cache invalidation failed", sl.Err(err))
	}
}

func validateFormFields(fields []models.FormField) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Label]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, f.Label)
		}
		seen[f.Label] = struct{}{}
	}
	return nil
}
