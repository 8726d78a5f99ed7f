package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"teamchat-be/internal/entity"
	"teamchat-be/internal/mapper"
	"teamchat-be/internal/model"
	"teamchat-be/internal/repository/contract"
	"teamchat-be/internal/repository/specification"
)

type ChatRoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatRoomRepository(db *gorm.DB) contract.ChatRoomRepository {
	return &ChatRoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatRoomRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRoomRepositoryImpl) Create(ctx context.Context, room *entity.ChatRoom) error {
	modelRoom := r.mapper.RoomToModel(room)
	// FullSaveAssociations is NOT wanted here: participants already
	// exist, only the join rows should be written.
	err := r.db.WithContext(ctx).
		Omit("Participants.*").
		Create(modelRoom).Error
	if err != nil {
		return err
	}
	*room = *r.mapper.RoomToEntity(modelRoom)
	return nil
}

func (r *ChatRoomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error) {
	var modelRoom model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)

	if err := query.First(&modelRoom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.RoomToEntity(&modelRoom), nil
}

func (r *ChatRoomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error) {
	var modelRooms []*model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx).Preload("Participants"), specs...)

	if err := query.Find(&modelRooms).Error; err != nil {
		return nil, err
	}

	return r.mapper.RoomsToEntities(modelRooms), nil
}

func (r *ChatRoomRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatRoom{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
