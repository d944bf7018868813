package rooms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tcases := []struct {
		name     string
		input    string
		expected Role
		err      bool
	}{
		{name: "owner", input: "Owner", expected: RoleOwner},
		{name: "super admin", input: "SuperAdmin", expected: RoleSuperAdmin},
		{name: "admin", input: "Admin", expected: RoleAdmin},
		{name: "power user", input: "PowerUser", expected: RolePowerUser},
		{name: "moderator", input: "Moderator", expected: RoleModerator},
		{name: "member", input: "Member", expected: RoleMember},
		{name: "unknown role", input: "Janitor", err: true},
		{name: "wrong case", input: "owner", err: true},
		{name: "empty", input: "", err: true},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			role, err := ParseRole(tc.input)
			if tc.err {
				assert.Error(t, err, "expected error for role %q", tc.input)
				assert.True(t, IsKind(err, KindInvalidRole), "expected invalid role kind for %q", tc.input)
				return
			}
			assert.NoError(t, err, "expected no error for role %q", tc.input)
			assert.Equal(t, tc.expected, role, "expected parsed role to match")
		})
	}
}

// Lower rank value means more authority: a rank-2 actor satisfies a
// rank-5 requirement, never the other way around.
func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleSuperAdmin, RoleModerator), "expected SuperAdmin to satisfy a Moderator requirement")
	assert.True(t, HasPermission(RoleOwner, RoleMember), "expected Owner to satisfy any requirement")
	assert.True(t, HasPermission(RoleAdmin, RoleAdmin), "expected equal rank to satisfy")
	assert.False(t, HasPermission(RoleModerator, RoleSuperAdmin), "expected Moderator not to satisfy a SuperAdmin requirement")
	assert.False(t, HasPermission(RoleMember, RoleModerator), "expected Member not to satisfy a Moderator requirement")
}

func TestCanAssign(t *testing.T) {
	tcases := []struct {
		name    string
		actor   Role
		target  Role
		allowed bool
	}{
		{name: "owner assigns super admin", actor: RoleOwner, target: RoleSuperAdmin, allowed: true},
		{name: "owner assigns admin", actor: RoleOwner, target: RoleAdmin, allowed: true},
		{name: "owner assigns moderator", actor: RoleOwner, target: RoleModerator, allowed: true},
		{name: "owner cannot assign owner", actor: RoleOwner, target: RoleOwner, allowed: false},
		{name: "super admin assigns admin", actor: RoleSuperAdmin, target: RoleAdmin, allowed: true},
		{name: "super admin assigns moderator", actor: RoleSuperAdmin, target: RoleModerator, allowed: true},
		{name: "super admin cannot assign super admin", actor: RoleSuperAdmin, target: RoleSuperAdmin, allowed: false},
		{name: "admin assigns moderator", actor: RoleAdmin, target: RoleModerator, allowed: true},
		{name: "admin cannot assign super admin", actor: RoleAdmin, target: RoleSuperAdmin, allowed: false},
		{name: "admin cannot assign admin", actor: RoleAdmin, target: RoleAdmin, allowed: false},
		{name: "moderator assigns nothing", actor: RoleModerator, target: RoleModerator, allowed: false},
		{name: "member assigns nothing", actor: RoleMember, target: RoleModerator, allowed: false},
		{name: "nobody assigns member", actor: RoleOwner, target: RoleMember, allowed: false},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanAssign(tc.actor, tc.target), "expected CanAssign(%s, %s) to be %v", tc.actor, tc.target, tc.allowed)
			assert.Equal(t, tc.allowed, CanRemove(tc.actor, tc.target), "expected CanRemove to mirror CanAssign")
			assert.Equal(t, tc.allowed, CanSee(tc.actor, tc.target), "expected CanSee to follow the same containment")
		})
	}
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "Owner", RoleOwner.String(), "expected Owner name")
	assert.Equal(t, "Unknown", Role(42).String(), "expected unknown rank to stringify safely")
	assert.NotEmpty(t, RoleModerator.Color(), "expected each role to carry a color")
}
