package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/natiberk/ministry-hub/internal/models"
)

// CreateMaterial inserts a material document.
func (s *Storage) CreateMaterial(ctx context.Context, m models.Material) (string, error) {
	const op = "storage.CreateMaterial"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO materials (id, title, description, file_url, category)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID string
	if err := s.DB.QueryRowContext(ctx, query,
		m.ID, m.Title, m.Description, m.FileURL, m.Category).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListMaterials returns all materials, newest first.
func (s *Storage) ListMaterials(ctx context.Context) ([]*models.Material, error) {
	const op = "storage.ListMaterials"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, file_url, category, created_at
			  FROM materials
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Material
	for rows.Next() {
		var m models.Material
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.FileURL,
			&m.Category, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMaterial overwrites a material and returns the affected row count.
func (s *Storage) UpdateMaterial(ctx context.Context, m models.Material) (int, error) {
	const op = "storage.UpdateMaterial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE materials
			  SET title = $1, description = $2, file_url = $3, category = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query, m.Title, m.Description, m.FileURL, m.Category, m.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMaterial deletes a material by ID.
func (s *Storage) RemoveMaterial(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveMaterial"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CreateNewsletter inserts a draft newsletter.
func (s *Storage) CreateNewsletter(ctx context.Context, n models.Newsletter) (string, error) {
	const op = "storage.CreateNewsletter"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO newsletters (id, subject, body, status)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	var newID string
	if err := s.DB.QueryRowContext(ctx, query, n.ID, n.Subject, n.Body, n.Status).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetNewsletter returns one newsletter by ID, ErrNotFound when absent.
func (s *Storage) GetNewsletter(ctx context.Context, id string) (*models.Newsletter, error) {
	const op = "storage.GetNewsletter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subject, body, status, sent_at, created_at
			  FROM newsletters WHERE id = $1`
	var n models.Newsletter
	var sentAt sql.NullTime
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&n.ID, &n.Subject, &n.Body, &n.Status, &sentAt, &n.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sentAt.Valid {
		n.SentAt = &sentAt.Time
	}
	return &n, nil
}

// ListNewsletters returns all newsletters, newest first.
func (s *Storage) ListNewsletters(ctx context.Context) ([]*models.Newsletter, error) {
	const op = "storage.ListNewsletters"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, subject, body, status, sent_at, created_at
			  FROM newsletters
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Newsletter
	for rows.Next() {
		var n models.Newsletter
		var sentAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.Subject, &n.Body, &n.Status, &sentAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if sentAt.Valid {
			n.SentAt = &sentAt.Time
		}
		result = append(result, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MarkNewsletterSent flips a newsletter to sent with the current timestamp.
func (s *Storage) MarkNewsletterSent(ctx context.Context, id string) (int, error) {
	const op = "storage.MarkNewsletterSent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE newsletters SET status = $1, sent_at = now() WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, models.NewsletterSent, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveNewsletter deletes a newsletter by ID.
func (s *Storage) RemoveNewsletter(ctx context.Context, id string) (int, error) {
	const op = "storage.RemoveNewsletter"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM newsletters WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// AddSubscriber saves a newsletter recipient address; duplicate addresses
// are ignored.
func (s *Storage) AddSubscriber(ctx context.Context, email string) error {
	const op = "storage.AddSubscriber"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscribers (email) VALUES ($1)
			  ON CONFLICT (email) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListSubscribers returns all newsletter recipients.
func (s *Storage) ListSubscribers(ctx context.Context) ([]*models.Subscriber, error) {
	const op = "storage.ListSubscribers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, email, created_at FROM subscribers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []*models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveSubscriber deletes a recipient address.
func (s *Storage) RemoveSubscriber(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM subscribers WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
