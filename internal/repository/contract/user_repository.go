package contract

import (
	"context"

	"github.com/google/uuid"

	"teamchat-be/internal/entity"
	"teamchat-be/internal/repository/specification"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Role groups (kept here for cohesion with the user lifecycle).
	FindGroup(ctx context.Context, name string) (*entity.Group, error)
	// GetOrCreateGroup is race-safe: a concurrent insert of the same
	// name resolves through the uniqueness constraint.
	GetOrCreateGroup(ctx context.Context, name string) (*entity.Group, error)
	AddGroupMember(ctx context.Context, groupId, userId uuid.UUID) error
}
