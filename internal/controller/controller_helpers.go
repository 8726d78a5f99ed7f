package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teamchat-be/internal/pkg/apperror"
)

// currentUserId pulls the authenticated user id set by the JWT
// middleware out of the request locals.
func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("Missing authenticated user")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("Invalid authenticated user")
	}
	return id, nil
}
