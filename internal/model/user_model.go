package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Username     string         `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string         `gorm:"type:varchar(255);not null"`
	PasswordHash *string        `gorm:"type:varchar(255)"`
	Role         string         `gorm:"type:varchar(10);not null"`
	Bio          string         `gorm:"type:varchar(500)"`
	AvatarURL    *string        `gorm:"type:text"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type Group struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupMembership struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_user"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_group_user"`
	Group     Group     `gorm:"foreignKey:GroupId;constraint:OnDelete:CASCADE"`
	User      User      `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (GroupMembership) TableName() string {
	return "group_memberships"
}
