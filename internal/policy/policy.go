// Package policy implements the typed capability check for admin
// operations: (user, resource, action) -> bool over an explicit permission
// table, instead of ad-hoc shape matching on the user object.
package policy

import "github.com/natiberk/ministry-hub/internal/models"

// Resource names the admin area an operation touches.
type Resource string

const (
	ResourceEvents     Resource = "events"
	ResourceNewsletter Resource = "newsletter"
	ResourceEmails     Resource = "emails"
	ResourceMaterials  Resource = "materials"
)

// Action is one of the CRUD verbs.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Allow reports whether the user may perform action on resource.
// Superadmins bypass the table; everyone else consults their own
// permission entry for the resource.
func Allow(user *models.User, resource Resource, action Action) bool {
	if user == nil {
		return false
	}
	if user.Role == models.RoleSuperadmin {
		return true
	}

	perms, ok := user.Permissions[string(resource)]
	if !ok {
		return false
	}
	switch action {
	case ActionCreate:
		return perms.Create
	case ActionRead:
		return perms.Read
	case ActionUpdate:
		return perms.Update
	case ActionDelete:
		return perms.Delete
	}
	return false
}

// CanManageUsers reports whether the user may create, edit or delete other
// accounts. User management is role-gated rather than table-gated.
func CanManageUsers(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleSuperadmin || user.Role == models.RoleAdmin
}

// CanModifyAccount reports whether target may be deleted or have its role
// changed. System-protected accounts are immutable in both respects.
func CanModifyAccount(actor, target *models.User) bool {
	if !CanManageUsers(actor) {
		return false
	}
	return !target.IsSystemProtected
}
