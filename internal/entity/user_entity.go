// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleManager UserRole = "manager"
	UserRoleAuditor UserRole = "auditor"
	UserRoleClient  UserRole = "client"
)

// Roles lists every valid role. The set is closed; a role is assigned
// once at registration and never updated.
var Roles = []UserRole{UserRoleManager, UserRoleAuditor, UserRoleClient}

func (r UserRole) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	Id           uuid.UUID
	Username     string
	Email        string
	PasswordHash *string
	Role         UserRole
	Bio          string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Group is a role-named group. One group exists per role; every user is
// a member of the group matching their role.
type Group struct {
	Id        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type GroupMembership struct {
	Id        uuid.UUID
	GroupId   uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
}
