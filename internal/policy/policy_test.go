package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/natiberk/ministry-hub/internal/models"
)

func TestAllow(t *testing.T) {
	staff := &models.User{
		Role: models.RoleStaff,
		Permissions: map[string]models.PermissionSet{
			"events":    {Create: true, Read: true},
			"materials": {Read: true},
		},
	}
	superadmin := &models.User{Role: models.RoleSuperadmin}

	tests := []struct {
		name     string
		user     *models.User
		resource Resource
		action   Action
		want     bool
	}{
		{
			name:     "granted bit",
			user:     staff,
			resource: ResourceEvents,
			action:   ActionCreate,
			want:     true,
		},
		{
			name:     "missing bit",
			user:     staff,
			resource: ResourceEvents,
			action:   ActionDelete,
			want:     false,
		},
		{
			name:     "resource not in table",
			user:     staff,
			resource: ResourceNewsletter,
			action:   ActionRead,
			want:     false,
		},
		{
			name:     "superadmin bypasses table",
			user:     superadmin,
			resource: ResourceEmails,
			action:   ActionDelete,
			want:     true,
		},
		{
			name:     "nil user",
			user:     nil,
			resource: ResourceEvents,
			action:   ActionRead,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.user, tt.resource, tt.action))
		})
	}
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, CanManageUsers(&models.User{Role: models.RoleSuperadmin}))
	assert.True(t, CanManageUsers(&models.User{Role: models.RoleAdmin}))
	assert.False(t, CanManageUsers(&models.User{Role: models.RoleStaff}))
	assert.False(t, CanManageUsers(nil))
}

func TestCanModifyAccount_ProtectedAccount(t *testing.T) {
	admin := &models.User{Role: models.RoleAdmin}
	protected := &models.User{Role: models.RoleSuperadmin, IsSystemProtected: true}
	regular := &models.User{Role: models.RoleStaff}

	assert.False(t, CanModifyAccount(admin, protected))
	assert.True(t, CanModifyAccount(admin, regular))
	assert.False(t, CanModifyAccount(regular, regular))
}
