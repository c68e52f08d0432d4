// Package material manages the study material library.
package material

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/natiberk/ministry-hub/internal/models"
)

// ErrMaterialNotFound reports an unknown material ID.
var ErrMaterialNotFound = errors.New("material not found")

type Storage interface {
	CreateMaterial(ctx context.Context, m models.Material) (string, error)
	ListMaterials(ctx context.Context) ([]*models.Material, error)
	UpdateMaterial(ctx context.Context, m models.Material) (int, error)
	RemoveMaterial(ctx context.Context, id string) (int, error)
}

type MaterialService struct {
	storage Storage
	log     *slog.Logger
}

func NewMaterialService(storage Storage, log *slog.Logger) *MaterialService {
	return &MaterialService{storage: storage, log: log}
}

func (s *MaterialService) Create(ctx context.Context, m models.Material) (string, error) {
	const op = "material.Create"

	m.ID = uuid.New().String()
	if _, err := s.storage.CreateMaterial(ctx, m); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return m.ID, nil
}

func (s *MaterialService) List(ctx context.Context) ([]*models.Material, error) {
	const op = "material.List"

	materials, err := s.storage.ListMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return materials, nil
}

func (s *MaterialService) Update(ctx context.Context, m models.Material) error {
	const op = "material.Update"

	n, err := s.storage.UpdateMaterial(ctx, m)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrMaterialNotFound
	}
	return nil
}

func (s *MaterialService) Remove(ctx context.Context, id string) error {
	const op = "material.Remove"

	n, err := s.storage.RemoveMaterial(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrMaterialNotFound
	}
	return nil
}
