// Package auth contains the business logic for account management and
// session authentication.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/natiberk/ministry-hub/internal/lib/jwt"
	"github.com/natiberk/ministry-hub/internal/lib/password"
	"github.com/natiberk/ministry-hub/internal/models"
)

// ErrInvalidCredentials is returned when the e-mail or password is wrong.
// Both cases collapse into one error so login failures do not reveal
// whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository is the storage contract of the auth service.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
}

// AuthService handles account creation, login and session token issuance.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService creates an AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register creates a new administrative account with a hashed password and
// returns its UID. The default role is staff with an empty permission
// table; the caller grants bits explicitly.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword, role string, permissions map[string]models.PermissionSet) (string, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if role == "" {
		role = models.RoleStaff
	}
	if permissions == nil {
		permissions = map[string]models.PermissionSet{}
	}
	user := models.User{
		UID:          uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		Permissions:  permissions,
	}
	return s.users.CreateUser(ctx, user)
}

// Login checks the password and issues a session token for the cookie.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// CurrentUser loads the full account behind a session token's uid; the
// permission middleware uses it to consult the permission table.
func (s *AuthService) CurrentUser(ctx context.Context, uid string) (*models.User, error) {
	return s.users.GetUser(ctx, uid)
}
