package controller

import (
	"github.com/gofiber/fiber/v2"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/pkg/serverutils"
	"teamchat-be/internal/service"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Me(ctx *fiber.Ctx) error
	UpdateMe(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/users")
	h.Use(auth)
	h.Get("/me", c.Me)
	h.Put("/me", c.UpdateMe)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Profile fetched", res))
}

func (c *userController) UpdateMe(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}
