// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/entity"
	"teamchat-be/internal/mapper"
	"teamchat-be/internal/pkg/apperror"
	"teamchat-be/internal/pkg/password"
	"teamchat-be/internal/repository/memory"
	"teamchat-be/internal/repository/specification"
	"teamchat-be/internal/repository/unitofwork"
	"teamchat-be/pkg/events"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher IPublisherService
	contactCache   *memory.ContactCache
	jwtSecret      string
	tokenTTL       time.Duration
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher IPublisherService,
	contactCache *memory.ContactCache,
	jwtSecret string,
	tokenTTL time.Duration,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		contactCache:   contactCache,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Password strength policy. All failures are reported at once.
	if failures := password.Validate(req.Password, req.Username); len(failures) > 0 {
		return nil, apperror.ValidationWithDetails("Invalid data provided", map[string][]string{
			"password": failures,
		})
	}

	// 2. Unique username. The store constraint is the final arbiter;
	// this check only gives a friendlier error.
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ValidationWithDetails("Invalid data provided", map[string][]string{
			"username": {"a user with that username already exists"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: &hashStr,
		Role:         entity.UserRole(req.Role),
		Bio:          req.Bio,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	// 3. User creation and role-group assignment are one transaction.
	// Group assignment is an explicit registration step, not a save
	// hook on the user record.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	group, err := uow.UserRepository().GetOrCreateGroup(ctx, string(user.Role))
	if err != nil {
		return nil, err
	}
	if err := uow.UserRepository().AddGroupMember(ctx, group.Id, user.Id); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.contactCache.Invalidate()

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserRegistered,
			Data: map[string]interface{}{
				"user_id":  user.Id,
				"username": user.Username,
				"role":     user.Role,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeUserRegistered, err)
		}
	}

	res := mapper.ToUserResponse(user)
	return &res, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.Validation("Please provide both username and password")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserLogin,
			Data: map[string]interface{}{
				"user_id": user.Id,
				"time":    time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish %s event: %v\n", events.TypeUserLogin, err)
		}
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User:        mapper.ToUserResponse(user),
	}, nil
}
