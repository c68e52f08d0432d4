package models

import "time"

// Administrative roles.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
)

// PermissionSet holds the CRUD bits of one resource for one user.
type PermissionSet struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// User is an administrative account. Permissions is keyed by resource name
// (events, newsletter, emails, materials). IsSystemProtected accounts can
// never be deleted or have their role changed.
type User struct {
	UID               string                   `json:"uid"`
	Name              string                   `json:"name"`
	Email             string                   `json:"email"`
	PasswordHash      string                   `json:"-"`
	Role              string                   `json:"role"`
	Permissions       map[string]PermissionSet `json:"permissions"`
	IsSystemProtected bool                     `json:"is_system_protected"`
	CreatedAt         time.Time                `json:"created_at"`
}
