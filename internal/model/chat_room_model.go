package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatRoom struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"type:varchar(100);not null"`
	ChatType     string     `gorm:"type:varchar(10);not null;default:'private'"`
	CreatedById  *uuid.UUID `gorm:"type:uuid"`
	CreatedBy    *User      `gorm:"foreignKey:CreatedById;constraint:OnDelete:SET NULL"`
	Participants []*User    `gorm:"many2many:chat_room_participants;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"autoCreateTime;index"`
}

func (ChatRoom) TableName() string {
	return "chat_rooms"
}
