package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teamchat-be/internal/dto"
	"teamchat-be/internal/pkg/serverutils"
	"teamchat-be/internal/service"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
	DeleteForMe(ctx *fiber.Ctx) error
	DeleteForEveryone(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
}

func NewMessageController(service service.IMessageService) IMessageController {
	return &messageController{service: service}
}

func (c *messageController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/messages")
	h.Use(auth)
	h.Get("/", c.List)
	h.Post("/", c.Create)
	h.Get("/:id/download", c.Download)
	h.Post("/:id/delete_for_me", c.DeleteForMe)
	h.Post("/:id/delete_for_everyone", c.DeleteForEveryone)
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var roomId *uuid.UUID
	if raw := ctx.Query("room"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
		}
		roomId = &id
	}

	res, err := c.service.ListMessages(ctx.Context(), userId, roomId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Messages fetched", res))
}

// Create accepts JSON for text-only messages and multipart form data
// when a file rides along (fields: room, content, file).
func (c *messageController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateMessageRequest
	var attachment *service.Attachment

	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		roomId, err := uuid.Parse(ctx.FormValue("room"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid room id")
		}
		req.RoomId = roomId
		req.Content = ctx.FormValue("content")

		if header, err := ctx.FormFile("file"); err == nil && header != nil {
			f, err := header.Open()
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Could not read uploaded file")
			}
			defer f.Close()
			attachment = &service.Attachment{Reader: f, Filename: header.Filename}
		}
	} else {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Malformed request body")
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateMessage(ctx.Context(), userId, &req, attachment)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Message sent", res))
}

func (c *messageController) Download(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid message id")
	}

	download, err := c.service.DownloadFile(ctx.Context(), userId, messageId)
	if err != nil {
		return err
	}

	return ctx.Download(download.Path, download.Filename)
}

func (c *messageController) DeleteForMe(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid message id")
	}

	if err := c.service.DeleteForMe(ctx.Context(), userId, messageId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message hidden for you", nil))
}

func (c *messageController) DeleteForEveryone(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid message id")
	}

	if err := c.service.DeleteForEveryone(ctx.Context(), userId, messageId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message deleted for everyone", nil))
}
