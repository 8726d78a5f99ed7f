package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRoomID struct {
	RoomID uuid.UUID
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

// ParticipatedBy limits chat rooms to those the user belongs to.
type ParticipatedBy struct {
	UserID uuid.UUID
}

func (s ParticipatedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"id IN (SELECT chat_room_id FROM chat_room_participants WHERE user_id = ?)",
		s.UserID,
	)
}

// InRoomsOf limits messages to rooms the user participates in.
type InRoomsOf struct {
	UserID uuid.UUID
}

func (s InRoomsOf) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"room_id IN (SELECT chat_room_id FROM chat_room_participants WHERE user_id = ?)",
		s.UserID,
	)
}

// VisibleTo excludes messages the user has hidden for themselves.
// Deleted-for-everyone messages stay in: they render redacted instead
// of disappearing.
type VisibleTo struct {
	UserID uuid.UUID
}

func (s VisibleTo) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"NOT EXISTS (SELECT 1 FROM deleted_messages dm WHERE dm.message_id = messages.id AND dm.user_id = ?)",
		s.UserID,
	)
}
