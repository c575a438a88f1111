package controller

import (
	"telemedicine-assistant-be/internal/dto"
	"telemedicine-assistant-be/internal/pkg/serverutils"
	"telemedicine-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	ClearMessages(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	GetContext(ctx *fiber.Ctx) error
	GetSuggestedQuestions(ctx *fiber.Ctx) error
}

type assistantController struct {
	service service.IAssistantService
}

func NewAssistantController(service service.IAssistantService) IAssistantController {
	return &assistantController{service: service}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	// Suggested questions are shown on the login screen, before auth.
	h.Get("suggested-questions", c.GetSuggestedQuestions)

	h.Use(serverutils.JwtMiddleware)
	h.Post("message", c.SendMessage)
	h.Get("messages", c.GetMessages)
	h.Delete("messages", c.ClearMessages)
	h.Get("history", c.GetHistory)
	h.Delete("history", c.ClearHistory)
	h.Get("context", c.GetContext)
}

func (c *assistantController) SendMessage(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	if res.Dropped {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(serverutils.SuccessResponse("Previous message still processing", res))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *assistantController) GetMessages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetMessages(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *assistantController) ClearMessages(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.service.ClearMessages(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear messages", nil))
}

func (c *assistantController) GetHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetChatHistory(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

func (c *assistantController) ClearHistory(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.service.ClearChatHistory(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear history", nil))
}

func (c *assistantController) GetContext(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.GetConversationContext(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get conversation context", res))
}

func (c *assistantController) GetSuggestedQuestions(ctx *fiber.Ctx) error {
	res := c.service.GetSuggestedQuestions(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get suggested questions", res))
}
