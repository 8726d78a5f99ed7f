// FILE: internal/service/user_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/mapper"
	"teamchat-be/internal/pkg/apperror"
	"teamchat-be/internal/repository/memory"
	"teamchat-be/internal/repository/specification"
	"teamchat-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	uowFactory   unitofwork.RepositoryFactory
	contactCache *memory.ContactCache
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, contactCache *memory.ContactCache) IUserService {
	return &userService{
		uowFactory:   uowFactory,
		contactCache: contactCache,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	res := mapper.ToUserResponse(user)
	return &res, nil
}

// UpdateProfile changes the mutable profile fields. Username and role
// are fixed at registration.
func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	// Contact listings embed profile fields; drop the cached directories
	// so they pick up the change immediately.
	s.contactCache.Invalidate()

	res := mapper.ToUserResponse(user)
	return &res, nil
}
