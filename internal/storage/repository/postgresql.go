// Package repository implements the PostgreSQL storage for events,
// registrations, users, materials, newsletters and subscribers. Dynamic
// document parts (form fields, answer maps, permission tables) are stored
// as JSONB columns; every write touches a single row, so no transaction
// spans more than one document.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// Storage wraps the pooled PostgreSQL connection. It is constructed once at
// process startup and passed by dependency injection into the services.
type Storage struct {
	DB *sql.DB
}

// New opens the PostgreSQL pool and verifies connectivity.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies that the schema has been migrated.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'registrations'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table registrations missing or query error: %w", err)
	}
	return nil
}
