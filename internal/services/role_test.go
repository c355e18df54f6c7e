package services

import (
	"testing"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoleDefaultsToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	// Missing profile.
	assert.Equal(t, models.RoleUser, svc.ResolveRole(9999))

	// Empty role.
	empty := createUser(t, db, "empty", "")
	assert.Equal(t, models.RoleUser, svc.ResolveRole(empty.ID))

	// Unknown role value.
	weird := createUser(t, db, "weird", "superuser")
	assert.Equal(t, models.RoleUser, svc.ResolveRole(weird.ID))
}

func TestResolveRoleReturnsStoredRole(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	owner := createUser(t, db, "owner", models.RoleOwner)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	mod := createUser(t, db, "mod", models.RoleModerator)

	assert.Equal(t, models.RoleOwner, svc.ResolveRole(owner.ID))
	assert.Equal(t, models.RoleAdmin, svc.ResolveRole(admin.ID))
	assert.Equal(t, models.RoleModerator, svc.ResolveRole(mod.ID))
}

func TestRolePredicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	owner := createUser(t, db, "owner", models.RoleOwner)
	admin := createUser(t, db, "admin", models.RoleAdmin)
	mod := createUser(t, db, "mod", models.RoleModerator)
	user := createUser(t, db, "user", models.RoleUser)

	assert.True(t, svc.IsAdmin(owner.ID))
	assert.True(t, svc.IsAdmin(admin.ID))
	assert.False(t, svc.IsAdmin(mod.ID))
	assert.False(t, svc.IsAdmin(user.ID))

	assert.True(t, svc.IsOwner(owner.ID))
	assert.False(t, svc.IsOwner(admin.ID))

	assert.True(t, svc.HasModerationRights(owner.ID))
	assert.True(t, svc.HasModerationRights(admin.ID))
	assert.True(t, svc.HasModerationRights(mod.ID))
	assert.False(t, svc.HasModerationRights(user.ID))
}

func TestRoleChangeTakesEffectImmediately(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoleService(db)

	user := createUser(t, db, "promoted", models.RoleUser)
	assert.False(t, svc.HasModerationRights(user.ID))

	db.Model(user).Update("role", models.RoleModerator)
	assert.True(t, svc.HasModerationRights(user.ID))
}
