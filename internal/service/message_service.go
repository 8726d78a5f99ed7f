// FILE: internal/service/message_service.go
package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/entity"
	"teamchat-be/internal/mapper"
	"teamchat-be/internal/pkg/apperror"
	"teamchat-be/internal/repository/specification"
	"teamchat-be/internal/repository/unitofwork"
	"teamchat-be/pkg/events"
	"teamchat-be/pkg/storage"
)

// Attachment is an incoming file upload, decoupled from the HTTP layer.
type Attachment struct {
	Reader   io.Reader
	Filename string
}

// Download points the HTTP layer at a stored attachment.
type Download struct {
	Path     string
	Filename string
}

type IMessageService interface {
	ListMessages(ctx context.Context, userId uuid.UUID, roomId *uuid.UUID) ([]*dto.MessageView, error)
	CreateMessage(ctx context.Context, userId uuid.UUID, req *dto.CreateMessageRequest, file *Attachment) (*dto.MessageView, error)
	DownloadFile(ctx context.Context, userId, messageId uuid.UUID) (*Download, error)
	DeleteForMe(ctx context.Context, userId, messageId uuid.UUID) error
	DeleteForEveryone(ctx context.Context, userId, messageId uuid.UUID) error
}

type messageService struct {
	uowFactory     unitofwork.RepositoryFactory
	fileStore      storage.FileStore
	eventPublisher IPublisherService
	baseURL        string
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	fileStore storage.FileStore,
	eventPublisher IPublisherService,
	baseURL string,
) IMessageService {
	return &messageService{
		uowFactory:     uowFactory,
		fileStore:      fileStore,
		eventPublisher: eventPublisher,
		baseURL:        baseURL,
	}
}

// ListMessages returns messages visible to the user, oldest first.
// With a room id the user must participate in that room; without one,
// all messages across the user's rooms are returned. Messages the user
// hid for themselves are excluded at the query.
func (s *messageService) ListMessages(ctx context.Context, userId uuid.UUID, roomId *uuid.UUID) ([]*dto.MessageView, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.VisibleTo{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: false},
	}

	if roomId != nil {
		if err := s.requireParticipant(ctx, uow, *roomId, userId); err != nil {
			return nil, err
		}
		specs = append(specs, specification.ByRoomID{RoomID: *roomId})
	} else {
		specs = append(specs, specification.InRoomsOf{UserID: userId})
	}

	messages, err := uow.MessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	// Hidden rows were excluded above, so no per-message lookup here.
	return mapper.RenderMessages(messages, s.baseURL), nil
}

func (s *messageService) CreateMessage(ctx context.Context, userId uuid.UUID, req *dto.CreateMessageRequest, file *Attachment) (*dto.MessageView, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.requireParticipant(ctx, uow, req.RoomId, userId); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" && file == nil {
		return nil, apperror.Validation("Message must have content or a file")
	}

	sender, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, apperror.NotFound("user")
	}

	message := &entity.Message{
		Id:        uuid.New(),
		RoomId:    req.RoomId,
		SenderId:  userId,
		Sender:    sender,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if file != nil {
		key, err := s.fileStore.Save(file.Reader, file.Filename)
		if err != nil {
			return nil, err
		}
		message.FilePath = &key
		message.FileName = &file.Filename
	}

	if err := uow.MessageRepository().Create(ctx, message); err != nil {
		// Don't orphan the stored blob when the row insert fails.
		if message.FilePath != nil {
			if rmErr := s.fileStore.Remove(*message.FilePath); rmErr != nil {
				fmt.Printf("[WARN] Failed to remove orphaned upload %s: %v\n", *message.FilePath, rmErr)
			}
		}
		return nil, err
	}
	message.Sender = sender

	s.publish(ctx, events.TypeMessageSent, map[string]interface{}{
		"message_id": message.Id,
		"room_id":    message.RoomId,
		"sender_id":  userId,
		"has_file":   message.HasFile(),
	})

	return mapper.RenderMessage(message, false, s.baseURL), nil
}

// DownloadFile resolves a message attachment for streaming. Redacted
// messages behave as if they never had a file.
func (s *messageService) DownloadFile(ctx context.Context, userId, messageId uuid.UUID) (*Download, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, apperror.NotFound("message")
	}

	if err := s.requireParticipant(ctx, uow, message.RoomId, userId); err != nil {
		return nil, err
	}

	if message.DeletedForEveryone || !message.HasFile() {
		return nil, apperror.NotFound("file")
	}

	path, err := s.fileStore.Path(*message.FilePath)
	if err != nil {
		return nil, err
	}

	filename := *message.FilePath
	if message.FileName != nil {
		filename = *message.FileName
	}
	return &Download{Path: path, Filename: filename}, nil
}

// DeleteForMe hides the message for this user only. Idempotent: the
// tombstone insert ignores duplicates, so repeated calls succeed.
func (s *messageService) DeleteForMe(ctx context.Context, userId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.NotFound("message")
	}

	tombstone := &entity.MessageTombstone{
		Id:        uuid.New(),
		MessageId: messageId,
		UserId:    userId,
		DeletedAt: time.Now(),
	}
	if err := uow.MessageRepository().CreateTombstone(ctx, tombstone); err != nil {
		return err
	}

	s.publish(ctx, events.TypeMessageHidden, map[string]interface{}{
		"message_id": messageId,
		"user_id":    userId,
	})
	return nil
}

// DeleteForEveryone marks the message deleted for all viewers. Only
// the sender or the room's creator may do this; the row is retained.
func (s *messageService) DeleteForEveryone(ctx context.Context, userId, messageId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	message, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: messageId})
	if err != nil {
		return err
	}
	if message == nil {
		return apperror.NotFound("message")
	}

	room, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByID{ID: message.RoomId})
	if err != nil {
		return err
	}
	if room == nil {
		return apperror.NotFound("chat room")
	}

	if message.SenderId != userId && !room.IsCreator(userId) {
		return apperror.Forbidden("You do not have permission to delete this message")
	}

	if err := uow.MessageRepository().MarkDeletedForEveryone(ctx, messageId); err != nil {
		return err
	}

	s.publish(ctx, events.TypeMessageRedacted, map[string]interface{}{
		"message_id": messageId,
		"user_id":    userId,
	})
	return nil
}

// requireParticipant is the room-membership authorization gate.
func (s *messageService) requireParticipant(ctx context.Context, uow unitofwork.UnitOfWork, roomId, userId uuid.UUID) error {
	room, err := uow.ChatRoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
	if err != nil {
		return err
	}
	if room == nil {
		return apperror.NotFound("chat room")
	}
	if !room.IsParticipant(userId) {
		return apperror.Forbidden("You are not a participant of this room")
	}
	return nil
}

func (s *messageService) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
