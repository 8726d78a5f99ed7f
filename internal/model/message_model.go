package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomId             uuid.UUID `gorm:"type:uuid;not null;index"`
	Room               ChatRoom  `gorm:"foreignKey:RoomId;constraint:OnDelete:CASCADE"`
	SenderId           uuid.UUID `gorm:"type:uuid;not null;index"`
	Sender             User      `gorm:"foreignKey:SenderId;constraint:OnDelete:CASCADE"`
	Content            string    `gorm:"type:text"`
	FilePath           *string   `gorm:"type:text"`
	FileName           *string   `gorm:"type:varchar(255)"`
	CreatedAt          time.Time `gorm:"autoCreateTime;index"`
	DeletedForEveryone bool      `gorm:"not null;default:false"`
}

func (Message) TableName() string {
	return "messages"
}

// MessageTombstone is the per-user hide record. The unique index makes
// delete-for-me idempotent at the store level.
type MessageTombstone struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MessageId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_message_user"`
	Message   Message   `gorm:"foreignKey:MessageId;constraint:OnDelete:CASCADE"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_message_user"`
	User      User      `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	DeletedAt time.Time `gorm:"autoCreateTime"`
}

func (MessageTombstone) TableName() string {
	return "deleted_messages"
}
