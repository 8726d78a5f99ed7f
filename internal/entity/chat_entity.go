// FILE: internal/entity/chat_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatType string

const (
	ChatTypePrivate ChatType = "private"
	ChatTypeGroup   ChatType = "group"
)

func (t ChatType) Valid() bool {
	return t == ChatTypePrivate || t == ChatTypeGroup
}

type ChatRoom struct {
	Id           uuid.UUID
	Name         string
	ChatType     ChatType
	CreatedById  *uuid.UUID
	CreatedAt    time.Time
	Participants []*User
}

// IsParticipant reports whether the given user belongs to the room.
func (r *ChatRoom) IsParticipant(userId uuid.UUID) bool {
	for _, p := range r.Participants {
		if p.Id == userId {
			return true
		}
	}
	return false
}

// IsCreator reports whether the given user created the room. Rooms
// migrated from before creator tracking have no creator.
func (r *ChatRoom) IsCreator(userId uuid.UUID) bool {
	return r.CreatedById != nil && *r.CreatedById == userId
}

type Message struct {
	Id                 uuid.UUID
	RoomId             uuid.UUID
	SenderId           uuid.UUID
	Sender             *User
	Content            string
	FilePath           *string
	FileName           *string
	CreatedAt          time.Time
	DeletedForEveryone bool
}

func (m *Message) HasFile() bool {
	return m.FilePath != nil && *m.FilePath != ""
}

// MessageTombstone records that a user hid a message for themselves.
// It is additive metadata: the message row itself is never touched.
type MessageTombstone struct {
	Id        uuid.UUID
	MessageId uuid.UUID
	UserId    uuid.UUID
	DeletedAt time.Time
}
