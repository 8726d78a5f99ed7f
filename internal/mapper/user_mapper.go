package mapper

import (
	"teamchat-be/internal/dto"
	"teamchat-be/internal/entity"
	"teamchat-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         entity.UserRole(u.Role),
		Bio:          u.Bio,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Bio:          u.Bio,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) GroupToEntity(g *model.Group) *entity.Group {
	if g == nil {
		return nil
	}
	return &entity.Group{
		Id:        g.Id,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}

func (m *UserMapper) GroupToModel(g *entity.Group) *model.Group {
	if g == nil {
		return nil
	}
	return &model.Group{
		Id:        g.Id,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
	}
}

func (m *UserMapper) MembershipToModel(gm *entity.GroupMembership) *model.GroupMembership {
	if gm == nil {
		return nil
	}
	return &model.GroupMembership{
		Id:        gm.Id,
		GroupId:   gm.GroupId,
		UserId:    gm.UserId,
		CreatedAt: gm.CreatedAt,
	}
}

// ToResponse builds the public profile DTO.
func ToUserResponse(u *entity.User) dto.UserResponse {
	res := dto.UserResponse{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
	}
	if u.AvatarURL != nil {
		res.AvatarURL = *u.AvatarURL
	}
	return res
}

func ToUserResponses(users []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}
