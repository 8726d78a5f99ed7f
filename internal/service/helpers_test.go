package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/entity"
	"teamchat-be/internal/model"
	"teamchat-be/internal/repository/memory"
	"teamchat-be/internal/repository/unitofwork"
	"teamchat-be/pkg/storage"
)

const testBaseURL = "http://localhost:3000"

type testEnv struct {
	db       *gorm.DB
	factory  unitofwork.RepositoryFactory
	contacts *memory.ContactCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named in-memory database, so every connection in the pool sees
	// the same data.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.GroupMembership{},
		&model.ChatRoom{},
		&model.Message{},
		&model.MessageTombstone{},
	))

	return &testEnv{
		db:       db,
		factory:  unitofwork.NewRepositoryFactory(db),
		contacts: memory.NewContactCache(),
	}
}

func (e *testEnv) seedUser(t *testing.T, username, role string) *entity.User {
	t.Helper()

	hash := "not-a-real-hash"
	u := &model.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: &hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, e.db.Create(u).Error)

	return &entity.User{
		Id:       u.Id,
		Username: u.Username,
		Email:    u.Email,
		Role:     entity.UserRole(u.Role),
	}
}

func (e *testEnv) roomService() IRoomService {
	return NewRoomService(e.factory, nil, e.contacts, testBaseURL)
}

func (e *testEnv) messageService(t *testing.T) IMessageService {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return NewMessageService(e.factory, store, nil, testBaseURL)
}

func (e *testEnv) createRoom(t *testing.T, creatorId uuid.UUID, name string, participantIds ...uuid.UUID) *dto.ChatRoomResponse {
	t.Helper()

	room, err := e.roomService().CreateRoom(context.Background(), creatorId, &dto.CreateRoomRequest{
		Name:           name,
		ChatType:       "group",
		ParticipantIds: participantIds,
	})
	require.NoError(t, err)
	return room
}

func (e *testEnv) sendMessage(t *testing.T, svc IMessageService, senderId, roomId uuid.UUID, content string) *dto.MessageView {
	t.Helper()

	msg, err := svc.CreateMessage(context.Background(), senderId, &dto.CreateMessageRequest{
		RoomId:  roomId,
		Content: content,
	}, nil)
	require.NoError(t, err)
	return msg
}
