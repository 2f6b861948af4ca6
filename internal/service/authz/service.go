// Package authz is the authorization gate: it answers "does this principal
// hold one of these privileges" and nothing else. Privilege storage lives on
// the role entity; a role flagged is_superuser is always authorized, so the
// system stays administrable even with incomplete privilege records.
package authz

import "kabar/internal/domain"

type Service interface {
	Authorize(principal *domain.User, privileges ...string) error
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) Authorize(principal *domain.User, privileges ...string) error {
	if principal == nil {
		return domain.ErrUnauthenticated
	}
	if principal.Role != nil && principal.Role.IsSuperuser {
		return nil
	}
	for _, p := range privileges {
		if principal.HasPrivilege(p) {
			return nil
		}
	}
	return domain.ErrForbidden
}
