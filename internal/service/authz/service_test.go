package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kabar/internal/domain"
)

func TestAuthorize(t *testing.T) {
	gate := NewService()

	moderator := &domain.User{
		Role: &domain.Role{
			Name:       "moderator",
			Privileges: []string{domain.PrivilegeReply, domain.PrivilegeModerate},
		},
	}
	member := &domain.User{
		Role: &domain.Role{
			Name:       "member",
			Privileges: []string{domain.PrivilegeReply},
		},
	}
	admin := &domain.User{
		Role: &domain.Role{Name: "admin", IsSuperuser: true},
	}

	t.Run("AnonymousIsUnauthenticated", func(t *testing.T) {
		err := gate.Authorize(nil, domain.PrivilegeModerate)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("PrivilegeHeld", func(t *testing.T) {
		assert.NoError(t, gate.Authorize(moderator, domain.PrivilegeModerate))
	})

	t.Run("PrivilegeMissing", func(t *testing.T) {
		err := gate.Authorize(member, domain.PrivilegeModerate)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("SuperuserHoldsEverything", func(t *testing.T) {
		assert.NoError(t, gate.Authorize(admin, domain.PrivilegeModerate))
		assert.NoError(t, gate.Authorize(admin, domain.PrivilegeManageRoles))
		assert.NoError(t, gate.Authorize(admin, "some_future_privilege"))
	})

	t.Run("AnyOfSeveralSuffices", func(t *testing.T) {
		assert.NoError(t, gate.Authorize(member, domain.PrivilegeModerate, domain.PrivilegeReply))
	})

	t.Run("NoRoleLoaded", func(t *testing.T) {
		err := gate.Authorize(&domain.User{}, domain.PrivilegeReply)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}
