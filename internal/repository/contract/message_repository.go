package contract

import (
	"context"

	"github.com/google/uuid"

	"teamchat-be/internal/entity"
	"teamchat-be/internal/repository/specification"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// MarkDeletedForEveryone flips the flag; the row is retained.
	MarkDeletedForEveryone(ctx context.Context, id uuid.UUID) error

	// CreateTombstone hides a message for one user. Idempotent:
	// a duplicate (message, user) pair is a no-op, enforced by the
	// store's uniqueness constraint with conflicts ignored.
	CreateTombstone(ctx context.Context, tombstone *entity.MessageTombstone) error
}
