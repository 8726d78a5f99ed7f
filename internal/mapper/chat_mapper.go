package mapper

import (
	"github.com/google/uuid"

	"teamchat-be/internal/entity"
	"teamchat-be/internal/model"
)

type ChatMapper struct {
	userMapper *UserMapper
}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{userMapper: NewUserMapper()}
}

func (m *ChatMapper) RoomToEntity(r *model.ChatRoom) *entity.ChatRoom {
	if r == nil {
		return nil
	}
	return &entity.ChatRoom{
		Id:           r.Id,
		Name:         r.Name,
		ChatType:     entity.ChatType(r.ChatType),
		CreatedById:  r.CreatedById,
		CreatedAt:    r.CreatedAt,
		Participants: m.userMapper.ToEntities(r.Participants),
	}
}

func (m *ChatMapper) RoomToModel(r *entity.ChatRoom) *model.ChatRoom {
	if r == nil {
		return nil
	}
	participants := make([]*model.User, len(r.Participants))
	for i, p := range r.Participants {
		participants[i] = m.userMapper.ToModel(p)
	}
	return &model.ChatRoom{
		Id:           r.Id,
		Name:         r.Name,
		ChatType:     string(r.ChatType),
		CreatedById:  r.CreatedById,
		CreatedAt:    r.CreatedAt,
		Participants: participants,
	}
}

func (m *ChatMapper) RoomsToEntities(rooms []*model.ChatRoom) []*entity.ChatRoom {
	entities := make([]*entity.ChatRoom, len(rooms))
	for i, r := range rooms {
		entities[i] = m.RoomToEntity(r)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	e := &entity.Message{
		Id:                 msg.Id,
		RoomId:             msg.RoomId,
		SenderId:           msg.SenderId,
		Content:            msg.Content,
		FilePath:           msg.FilePath,
		FileName:           msg.FileName,
		CreatedAt:          msg.CreatedAt,
		DeletedForEveryone: msg.DeletedForEveryone,
	}
	if msg.Sender.Id != uuid.Nil {
		e.Sender = m.userMapper.ToEntity(&msg.Sender)
	}
	return e
}

func (m *ChatMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:                 msg.Id,
		RoomId:             msg.RoomId,
		SenderId:           msg.SenderId,
		Content:            msg.Content,
		FilePath:           msg.FilePath,
		FileName:           msg.FileName,
		CreatedAt:          msg.CreatedAt,
		DeletedForEveryone: msg.DeletedForEveryone,
	}
}

func (m *ChatMapper) MessagesToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.MessageToEntity(msg)
	}
	return entities
}

func (m *ChatMapper) TombstoneToModel(t *entity.MessageTombstone) *model.MessageTombstone {
	if t == nil {
		return nil
	}
	return &model.MessageTombstone{
		Id:        t.Id,
		MessageId: t.MessageId,
		UserId:    t.UserId,
		DeletedAt: t.DeletedAt,
	}
}

func (m *ChatMapper) TombstoneToEntity(t *model.MessageTombstone) *entity.MessageTombstone {
	if t == nil {
		return nil
	}
	return &entity.MessageTombstone{
		Id:        t.Id,
		MessageId: t.MessageId,
		UserId:    t.UserId,
		DeletedAt: t.DeletedAt,
	}
}
