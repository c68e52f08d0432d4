// Package user manages administrative accounts on behalf of other admins.
// Account mutation rules live in the policy package; this service enforces
// them on every write.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/natiberk/ministry-hub/internal/models"
	"github.com/natiberk/ministry-hub/internal/policy"
	"github.com/natiberk/ministry-hub/internal/storage/repository"
)

var (
	// ErrUserNotFound reports an unknown account UID.
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden reports a mutation the acting account may not perform.
	ErrForbidden = errors.New("operation not permitted")
)

type Storage interface {
	GetUser(ctx context.Context, uid string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, user models.User) (int, error)
	RemoveUser(ctx context.Context, uid string) (int, error)
}

type UserService struct {
	storage Storage
	log     *slog.Logger
}

func NewUserService(storage Storage, log *slog.Logger) *UserService {
	return &UserService{storage: storage, log: log}
}

func (s *UserService) List(ctx context.Context, actor *models.User) ([]*models.User, error) {
	const op = "user.List"

	if !policy.CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Update rewrites the mutable fields of an account. Mutations on
// system-protected accounts are rejected before the storage is touched.
func (s *UserService) Update(ctx context.Context, actor *models.User, updated models.User) error {
	const op = "user.Update"

	target, err := s.loadTarget(ctx, actor, updated.UID)
	if err != nil {
		return err
	}

	// The protection flag and password are never writable through this path.
	updated.IsSystemProtected = target.IsSystemProtected
	updated.PasswordHash = target.PasswordHash

	n, err := s.storage.UpdateUser(ctx, updated)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}

	s.log.Info("account updated",
		slog.String("actor_uid", actor.UID),
		slog.String("target_uid", updated.UID))
	return nil
}

func (s *UserService) Remove(ctx context.Context, actor *models.User, uid string) error {
	const op = "user.Remove"

	if _, err := s.loadTarget(ctx, actor, uid); err != nil {
		return err
	}

	n, err := s.storage.RemoveUser(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}

	s.log.Info("account removed",
		slog.String("actor_uid", actor.UID),
		slog.String("target_uid", uid))
	return nil
}

func (s *UserService) loadTarget(ctx context.Context, actor *models.User, uid string) (*models.User, error) {
	const op = "user.loadTarget"

	if !policy.CanManageUsers(actor) {
		return nil, ErrForbidden
	}
	target, err := s.storage.GetUser(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !policy.CanModifyAccount(actor, target) {
		return nil, ErrForbidden
	}
	return target, nil
}
