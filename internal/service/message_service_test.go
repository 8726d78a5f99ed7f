package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/mapper"
	"teamchat-be/internal/model"
	"teamchat-be/internal/pkg/apperror"
	"teamchat-be/pkg/storage"
)

func TestCreateMessageValidation(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager1", "manager")
	client := env.seedUser(t, "client1", "client")
	outsider := env.seedUser(t, "outsider", "client")
	room := env.createRoom(t, manager.Id, "Support", client.Id)

	svc := env.messageService(t)

	t.Run("non-participant is rejected", func(t *testing.T) {
		_, err := svc.CreateMessage(context.Background(), outsider.Id, &dto.CreateMessageRequest{
			RoomId:  room.Id,
			Content: "hello",
		}, nil)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("empty message is rejected", func(t *testing.T) {
		_, err := svc.CreateMessage(context.Background(), client.Id, &dto.CreateMessageRequest{
			RoomId:  room.Id,
			Content: "   ",
		}, nil)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
	})

	t.Run("file without content is accepted", func(t *testing.T) {
		view, err := svc.CreateMessage(context.Background(), client.Id, &dto.CreateMessageRequest{
			RoomId: room.Id,
		}, &Attachment{Reader: strings.NewReader("report body"), Filename: "report.pdf"})
		require.NoError(t, err)
		require.NotNil(t, view.FileName)
		assert.Equal(t, "report.pdf", *view.FileName)
		require.NotNil(t, view.FileURL)
		assert.Contains(t, *view.FileURL, "/api/messages/"+view.Id.String()+"/download")
	})
}

func TestCreateMessageCleansUpUploadOnFailure(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager1", "manager")
	client := env.seedUser(t, "client1", "client")
	room := env.createRoom(t, manager.Id, "Support", client.Id)

	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)
	svc := NewMessageService(env.factory, store, nil, testBaseURL)

	// Force the insert to fail after the blob has been written.
	require.NoError(t, env.db.Migrator().DropTable(&model.Message{}))

	_, err = svc.CreateMessage(context.Background(), client.Id, &dto.CreateMessageRequest{
		RoomId:  room.Id,
		Content: "see attachment",
	}, &Attachment{Reader: strings.NewReader("report body"), Filename: "report.pdf"})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListMessagesMembershipGate(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager1", "manager")
	client := env.seedUser(t, "client1", "client")
	outsider := env.seedUser(t, "outsider", "client")

	room := env.createRoom(t, manager.Id, "Support", client.Id)
	other := env.createRoom(t, manager.Id, "Private notes")

	svc := env.messageService(t)
	env.sendMessage(t, svc, client.Id, room.Id, "shared room message")
	env.sendMessage(t, svc, manager.Id, other.Id, "manager only message")

	t.Run("non-participant cannot read a room", func(t *testing.T) {
		_, err := svc.ListMessages(context.Background(), outsider.Id, &room.Id)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("room listing is scoped to that room", func(t *testing.T) {
		msgs, err := svc.ListMessages(context.Background(), client.Id, &room.Id)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "shared room message", msgs[0].Content)
	})

	t.Run("unscoped listing covers own rooms only", func(t *testing.T) {
		msgs, err := svc.ListMessages(context.Background(), client.Id, nil)
		require.NoError(t, err)
		require.Len(t, msgs, 1)

		msgs, err = svc.ListMessages(context.Background(), manager.Id, nil)
		require.NoError(t, err)
		assert.Len(t, msgs, 2)
	})
}

func TestDeleteForMe(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager1", "manager")
	client := env.seedUser(t, "client1", "client")
	room := env.createRoom(t, manager.Id, "Support", client.Id)

	svc := env.messageService(t)
	msg := env.sendMessage(t, svc, client.Id, room.Id, "to be hidden")

	require.NoError(t, svc.DeleteForMe(context.Background(), manager.Id, msg.Id))

	// Idempotent: a second call succeeds and leaves one tombstone.
	require.NoError(t, svc.DeleteForMe(context.Background(), manager.Id, msg.Id))

	var tombstones int64
	require.NoError(t, env.db.Model(&model.MessageTombstone{}).
		Where("message_id = ? AND user_id = ?", msg.Id, manager.Id).
		Count(&tombstones).Error)
	assert.EqualValues(t, 1, tombstones)

	// Hidden for the manager, still visible to the sender.
	msgs, err := svc.ListMessages(context.Background(), manager.Id, &room.Id)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	msgs, err = svc.ListMessages(context.Background(), client.Id, &room.Id)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "to be hidden", msgs[0].Content)

	t.Run("unknown message", func(t *testing.T) {
		err := svc.DeleteForMe(context.Background(), manager.Id, msg.RoomId)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})
}

func TestDeleteForEveryone(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager1", "manager")
	client := env.seedUser(t, "client1", "client")
	auditor := env.seedUser(t, "auditor1", "auditor")
	room := env.createRoom(t, manager.Id, "Support", client.Id, auditor.Id)

	svc := env.messageService(t)
	msg := env.sendMessage(t, svc, client.Id, room.Id, "sensitive")

	t.Run("bystander is rejected", func(t *testing.T) {
		err := svc.DeleteForEveryone(context.Background(), auditor.Id, msg.Id)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)

		var stored model.Message
		require.NoError(t, env.db.First(&stored, "id = ?", msg.Id).Error)
		assert.False(t, stored.DeletedForEveryone)
	})

	t.Run("sender can delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteForEveryone(context.Background(), client.Id, msg.Id))

		// Every participant now sees the placeholder; the row remains.
		msgs, err := svc.ListMessages(context.Background(), auditor.Id, &room.Id)
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, mapper.DeletedPlaceholder, msgs[0].Content)
		assert.True(t, msgs[0].DeletedForEveryone)
		assert.Nil(t, msgs[0].FileURL)
	})

	t.Run("room creator can delete others' messages", func(t *testing.T) {
		other := env.sendMessage(t, svc, client.Id, room.Id, "also sensitive")
		require.NoError(t, svc.DeleteForEveryone(context.Background(), manager.Id, other.Id))

		var stored model.Message
		require.NoError(t, env.db.First(&stored, "id = ?", other.Id).Error)
		assert.True(t, stored.DeletedForEveryone)
	})
}

func TestDownloadFile(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager1", "manager")
	client := env.seedUser(t, "client1", "client")
	outsider := env.seedUser(t, "outsider", "client")
	room := env.createRoom(t, manager.Id, "Support", client.Id)

	svc := env.messageService(t)

	withFile, err := svc.CreateMessage(context.Background(), client.Id, &dto.CreateMessageRequest{
		RoomId:  room.Id,
		Content: "see attachment",
	}, &Attachment{Reader: strings.NewReader("attachment body"), Filename: "invoice.txt"})
	require.NoError(t, err)

	textOnly := env.sendMessage(t, svc, client.Id, room.Id, "no attachment")

	t.Run("participant downloads the stored blob", func(t *testing.T) {
		download, err := svc.DownloadFile(context.Background(), manager.Id, withFile.Id)
		require.NoError(t, err)
		assert.Equal(t, "invoice.txt", download.Filename)

		data, err := os.ReadFile(download.Path)
		require.NoError(t, err)
		assert.Equal(t, "attachment body", string(data))
	})

	t.Run("non-participant is rejected", func(t *testing.T) {
		_, err := svc.DownloadFile(context.Background(), outsider.Id, withFile.Id)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindForbidden, appErr.Kind)
	})

	t.Run("message without a file", func(t *testing.T) {
		_, err := svc.DownloadFile(context.Background(), manager.Id, textOnly.Id)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})

	t.Run("redacted message behaves as fileless", func(t *testing.T) {
		require.NoError(t, svc.DeleteForEveryone(context.Background(), client.Id, withFile.Id))

		_, err := svc.DownloadFile(context.Background(), manager.Id, withFile.Id)
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	})
}
