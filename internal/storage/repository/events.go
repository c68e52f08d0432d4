package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/natiberk/ministry-hub/internal/models"
)

// CreateEvent inserts a new event with its form-field list.
func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (string, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	fields, err := json.Marshal(event.FormFields)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO events (id, title, description, date, location, is_paid, price, form_fields)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		event.ID, event.Title, event.Description, event.Date, event.Location,
		event.IsPaid, event.Price, fields).Scan(&newID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetEvent returns one event by ID, ErrNotFound when it does not exist.
func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	const op = "storage.GetEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, date, location, is_paid, price, form_fields,
				  created_at, updated_at
			  FROM events WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return event, nil
}

// ListEvents returns all events ordered by date, newest first.
func (s *Storage) ListEvents(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, date, location, is_paid, price, form_fields,
				  created_at, updated_at
			  FROM events
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEvent overwrites an event's fields and returns the number of
// affected rows. Last write wins.
func (s *Storage) UpdateEvent(ctx context.Context, event models.Event) (int, error) {
	const op = "storage.UpdateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	fields, err := json.Marshal(event.FormFields)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE events
			  SET title = $1, description = $2, date = $3, location = $4,
			      is_paid = $5, price = $6, form_fields = $7, updated_at = now()
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		event.Title, event.Description, event.Date, event.Location,
		event.IsPaid, event.Price, fields, event.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveEvent deletes an event by ID and returns the number of deleted rows.
func (s *Storage) RemoveEvent(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM events WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	var event models.Event
	var fields []byte
	if err := row.Scan(&event.ID, &event.Title, &event.Description, &event.Date,
		&event.Location, &event.IsPaid, &event.Price, &fields,
		&event.CreatedAt, &event.UpdatedAt); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &event.FormFields); err != nil {
			return nil, err
		}
	}
	return &event, nil
}
