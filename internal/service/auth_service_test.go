package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/model"
	"teamchat-be/internal/pkg/apperror"
)

const testJWTSecret = "test-secret"

func newAuthService(e *testEnv) IAuthService {
	return NewAuthService(e.factory, nil, e.contacts, testJWTSecret, 24*time.Hour)
}

func TestRegisterAssignsRoleGroup(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct-horse-battery",
		Role:     "manager",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "manager", res.Role)

	var group model.Group
	require.NoError(t, env.db.Where("name = ?", "manager").First(&group).Error)

	var memberships int64
	require.NoError(t, env.db.Model(&model.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", group.Id, res.Id).
		Count(&memberships).Error)
	assert.EqualValues(t, 1, memberships)

	// A second registration with the same role reuses the group.
	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "amanda",
		Email:    "amanda@example.com",
		Password: "correct-horse-battery",
		Role:     "manager",
	})
	require.NoError(t, err)

	var groups int64
	require.NoError(t, env.db.Model(&model.Group{}).Where("name = ?", "manager").Count(&groups).Error)
	assert.EqualValues(t, 1, groups)
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	tests := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "abc123"},
		{name: "entirely numeric", password: "92837465102"},
		{name: "too common", password: "qwertyuiop"},
		{name: "similar to username", password: "bob_the_builder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &dto.RegisterRequest{
				Username: "bob_the_builder",
				Email:    "bob@example.com",
				Password: tt.password,
				Role:     "client",
			})
			require.Error(t, err)

			appErr, ok := err.(*apperror.AppError)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.NotEmpty(t, appErr.Details["password"])
		})
	}

	// No partial user rows left behind.
	var users int64
	require.NoError(t, env.db.Model(&model.User{}).Count(&users).Error)
	assert.EqualValues(t, 0, users)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)
	env.seedUser(t, "carol", "client")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "carol",
		Email:    "carol2@example.com",
		Password: "correct-horse-battery",
		Role:     "client",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperror.AppError)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.NotEmpty(t, appErr.Details["username"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuthService(env)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "dave",
		Email:    "dave@example.com",
		Password: "correct-horse-battery",
		Role:     "auditor",
	})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		res, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "dave",
			Password: "correct-horse-battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "dave", res.User.Username)

		token, err := jwt.Parse(res.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(testJWTSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		require.NoError(t, err)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, res.User.Id.String(), claims["user_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "dave",
			Password: "not-the-password",
		})
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindUnauthorized, appErr.Kind)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Username: "nobody",
			Password: "correct-horse-battery",
		})
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindUnauthorized, appErr.Kind)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "dave"})
		require.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
	})
}

func TestLoginTokenTTL(t *testing.T) {
	env := newTestEnv(t)
	ttl := 2 * time.Hour
	svc := NewAuthService(env.factory, nil, env.contacts, testJWTSecret, ttl)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "erin",
		Email:    "erin@example.com",
		Password: "correct-horse-battery",
		Role:     "client",
	})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Username: "erin",
		Password: "correct-horse-battery",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(res.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	exp, err := token.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(ttl), exp.Time, time.Minute)
}
