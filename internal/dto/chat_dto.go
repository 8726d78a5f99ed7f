// FILE: internal/dto/chat_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name           string      `json:"name" validate:"required,max=100"`
	ChatType       string      `json:"chat_type" validate:"required,oneof=private group"`
	ParticipantIds []uuid.UUID `json:"participant_ids"`
}

type ChatRoomResponse struct {
	Id           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	ChatType     string         `json:"chat_type"`
	CreatedBy    *UserResponse  `json:"created_by"`
	Participants []UserResponse `json:"participants"`
	CreatedAt    time.Time      `json:"created_at"`
	LastMessage  *MessageView   `json:"last_message"`
}

type CreateMessageRequest struct {
	RoomId  uuid.UUID `json:"room" form:"room" validate:"required"`
	Content string    `json:"content" form:"content"`
}

// MessageView is the rendered representation of a message for one
// viewer. Exactly one of the two constructors in internal/mapper
// produces it; handlers never assemble it field by field.
type MessageView struct {
	Id                 uuid.UUID    `json:"id"`
	RoomId             uuid.UUID    `json:"room"`
	Sender             UserResponse `json:"sender"`
	Content            string       `json:"content"`
	FileName           *string      `json:"file_name"`
	FileURL            *string      `json:"file_url"`
	Timestamp          time.Time    `json:"timestamp"`
	IsDeleted          bool         `json:"is_deleted"`
	DeletedForEveryone bool         `json:"deleted_for_everyone"`
}
