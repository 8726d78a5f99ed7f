package contract

import (
	"context"

	"teamchat-be/internal/entity"
	"teamchat-be/internal/repository/specification"
)

type ChatRoomRepository interface {
	// Create persists the room and its participant set in one shot.
	Create(ctx context.Context, room *entity.ChatRoom) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
