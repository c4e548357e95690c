package authorization

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserRole(t *testing.T) {
	assert.True(t, RoleDeveloper.IsProtected())
	assert.False(t, RoleAdmin.IsProtected())
	assert.True(t, RoleDeveloper.IsAdmin())
	assert.False(t, RoleCustomer.IsAdmin())
	assert.Equal(t, RoleCustomer, ParseUserRole("printer"))
	assert.Equal(t, RoleAdmin, ParseUserRole("admin"))
}

func TestActorLabel(t *testing.T) {
	assert.Equal(t, "system", SystemActor().Label())
	assert.True(t, SystemActor().IsSystem())

	admin := NewUserActor(4, "maria", RoleAdmin)
	assert.False(t, admin.IsSystem())
	assert.Equal(t, "maria", admin.Label())
	assert.Equal(t, uint(4), *admin.UserID)
}
