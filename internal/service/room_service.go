// FILE: internal/service/room_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/entity"
	"teamchat-be/internal/mapper"
	"teamchat-be/internal/pkg/apperror"
	"teamchat-be/internal/repository/memory"
	"teamchat-be/internal/repository/specification"
	"teamchat-be/internal/repository/unitofwork"
	"teamchat-be/pkg/events"
)

// contactPolicy enumerates which roles each role may start a chat
// with. Managers reach everyone; auditors and clients reach managers
// only. The requester themselves is always excluded.
var contactPolicy = map[entity.UserRole][]entity.UserRole{
	entity.UserRoleManager: {entity.UserRoleManager, entity.UserRoleAuditor, entity.UserRoleClient},
	entity.UserRoleAuditor: {entity.UserRoleManager},
	entity.UserRoleClient:  {entity.UserRoleManager},
}

type IRoomService interface {
	ListRooms(ctx context.Context, userId uuid.UUID) ([]*dto.ChatRoomResponse, error)
	AvailableContacts(ctx context.Context, userId uuid.UUID) ([]dto.UserResponse, error)
	CreateRoom(ctx context.Context, userId uuid.UUID, req *dto.CreateRoomRequest) (*dto.ChatRoomResponse, error)
}

type roomService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IPublisherService
	contactCache   *memory.ContactCache
	baseURL        string
}

func NewRoomService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IPublisherService,
	contactCache *memory.ContactCache,
	baseURL string,
) IRoomService {
	return &roomService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		contactCache:   contactCache,
		baseURL:        baseURL,
	}
}

func (s *roomService) ListRooms(ctx context.Context, userId uuid.UUID) ([]*dto.ChatRoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rooms, err := uow.ChatRoomRepository().FindAll(ctx,
		specification.ParticipatedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ChatRoomResponse, 0, len(rooms))
	for _, room := range rooms {
		last, err := s.lastVisibleMessage(ctx, uow, room.Id, userId)
		if err != nil {
			return nil, err
		}
		result = append(result, s.toRoomResponse(room, last))
	}
	return result, nil
}

// lastVisibleMessage returns the newest message in the room the viewer
// has not hidden for themselves. A message deleted for everyone still
// qualifies; it renders redacted.
func (s *roomService) lastVisibleMessage(ctx context.Context, uow unitofwork.UnitOfWork, roomId, viewerId uuid.UUID) (*dto.MessageView, error) {
	msg, err := uow.MessageRepository().FindOne(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.VisibleTo{UserID: viewerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}
	return mapper.RenderMessage(msg, false, s.baseURL), nil
}

func (s *roomService) AvailableContacts(ctx context.Context, userId uuid.UUID) ([]dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requester, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, apperror.NotFound("user")
	}

	visibleRoles, ok := contactPolicy[requester.Role]
	if !ok {
		return []dto.UserResponse{}, nil
	}

	contacts, cached := s.contactCache.Get(requester.Role)
	if !cached {
		roles := make([]string, len(visibleRoles))
		for i, r := range visibleRoles {
			roles[i] = string(r)
		}
		contacts, err = uow.UserRepository().FindAll(ctx,
			specification.ByRoles{Roles: roles},
			specification.OrderBy{Field: "username", Desc: false},
		)
		if err != nil {
			return nil, err
		}
		s.contactCache.Save(requester.Role, contacts)
	}

	result := make([]dto.UserResponse, 0, len(contacts))
	for _, contact := range contacts {
		if contact.Id == userId {
			continue
		}
		result = append(result, mapper.ToUserResponse(contact))
	}
	return result, nil
}

// CreateRoom creates the room with its full participant set in one
// transaction. Any unknown participant id fails the whole operation;
// there are no silently-partial rooms.
func (s *roomService) CreateRoom(ctx context.Context, userId uuid.UUID, req *dto.CreateRoomRequest) (*dto.ChatRoomResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	creator, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, apperror.NotFound("user")
	}

	// Deduplicate and drop the creator; they are added explicitly.
	wanted := make([]uuid.UUID, 0, len(req.ParticipantIds))
	seen := map[uuid.UUID]bool{userId: true}
	for _, id := range req.ParticipantIds {
		if !seen[id] {
			seen[id] = true
			wanted = append(wanted, id)
		}
	}

	participants := []*entity.User{creator}
	if len(wanted) > 0 {
		found, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: wanted})
		if err != nil {
			return nil, err
		}
		if len(found) != len(wanted) {
			return nil, apperror.Validation("One or more participants do not exist")
		}
		participants = append(participants, found...)
	}

	room := &entity.ChatRoom{
		Id:           uuid.New(),
		Name:         req.Name,
		ChatType:     entity.ChatType(req.ChatType),
		CreatedById:  &creator.Id,
		CreatedAt:    time.Now(),
		Participants: participants,
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatRoomRepository().Create(ctx, room); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeRoomCreated,
			Data: map[string]interface{}{
				"room_id":    room.Id,
				"created_by": creator.Id,
				"chat_type":  room.ChatType,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeRoomCreated, err)
		}
	}

	return s.toRoomResponse(room, nil), nil
}

func (s *roomService) toRoomResponse(room *entity.ChatRoom, last *dto.MessageView) *dto.ChatRoomResponse {
	res := &dto.ChatRoomResponse{
		Id:           room.Id,
		Name:         room.Name,
		ChatType:     string(room.ChatType),
		Participants: mapper.ToUserResponses(room.Participants),
		CreatedAt:    room.CreatedAt,
		LastMessage:  last,
	}
	if room.CreatedById != nil {
		for _, p := range room.Participants {
			if p.Id == *room.CreatedById {
				creator := mapper.ToUserResponse(p)
				res.CreatedBy = &creator
				break
			}
		}
	}
	return res
}
