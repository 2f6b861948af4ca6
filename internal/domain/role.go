package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Privileges consumed by the API surface. Roles may carry any subset; a role
// flagged is_superuser holds every privilege implicitly.
const (
	PrivilegeReply       = "can_reply"
	PrivilegeModerate    = "can_moderate"
	PrivilegePublish     = "can_publish"
	PrivilegeManageUsers = "can_manage_users"
	PrivilegeManageRoles = "can_manage_roles"
)

type Role struct {
	ID          uuid.UUID      `json:"id" db:"role_id"`
	Name        string         `json:"name" db:"name"`
	Privileges  pq.StringArray `json:"privileges" db:"privileges"`
	IsSuperuser bool           `json:"is_superuser" db:"is_superuser"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
}

func (r *Role) HasPrivilege(privilege string) bool {
	if r.IsSuperuser {
		return true
	}
	for _, p := range r.Privileges {
		if p == privilege {
			return true
		}
	}
	return false
}

type CreateRoleInput struct {
	Name        string   `json:"name"`
	Privileges  []string `json:"privileges"`
	IsSuperuser bool     `json:"is_superuser"`
}

type UpdateRoleInput struct {
	Name        *string   `json:"name,omitempty"`
	Privileges  *[]string `json:"privileges,omitempty"`
	IsSuperuser *bool     `json:"is_superuser,omitempty"`
}
