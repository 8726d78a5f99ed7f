package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/pkg/apperror"
)

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "manager")
	svc := NewUserService(env.factory, env.contacts)

	res, err := svc.GetProfile(context.Background(), user.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "manager", res.Role)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	require.Error(t, err)
	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "alice", "manager")
	svc := NewUserService(env.factory, env.contacts)

	bio := "On-call manager"
	avatar := "https://cdn.example.com/alice.png"
	res, err := svc.UpdateProfile(context.Background(), user.Id, &dto.UpdateProfileRequest{
		Email:     "alice.new@example.com",
		Bio:       &bio,
		AvatarURL: &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice.new@example.com", res.Email)
	assert.Equal(t, "On-call manager", res.Bio)
	assert.Equal(t, avatar, res.AvatarURL)

	// Username and role are fixed at registration.
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "manager", res.Role)

	// Omitted fields keep their values.
	res, err = svc.UpdateProfile(context.Background(), user.Id, &dto.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "alice.new@example.com", res.Email)
	assert.Equal(t, "On-call manager", res.Bio)
}

func TestUpdateProfileRefreshesContactDirectory(t *testing.T) {
	env := newTestEnv(t)
	manager := env.seedUser(t, "manager1", "manager")
	client := env.seedUser(t, "client1", "client")

	userSvc := NewUserService(env.factory, env.contacts)
	roomSvc := env.roomService()

	// Warm the per-role directory cache.
	contacts, err := roomSvc.AvailableContacts(context.Background(), client.Id)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Empty(t, contacts[0].Bio)

	bio := "Escalations only"
	_, err = userSvc.UpdateProfile(context.Background(), manager.Id, &dto.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	// The update drops the cached directory, so the next listing is
	// fresh rather than stale until the TTL expires.
	contacts, err = roomSvc.AvailableContacts(context.Background(), client.Id)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Escalations only", contacts[0].Bio)
}
