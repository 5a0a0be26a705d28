package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authGuard fiber.Handler)
	CreateSession(ctx *fiber.Ctx) error
	ListSessions(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	SaveTranscript(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	RecentActivity(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService     service.IChatService
	activityService service.IActivityService
}

func NewChatController(chatService service.IChatService, activityService service.IActivityService) IChatController {
	return &chatController{
		chatService:     chatService,
		activityService: activityService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authGuard fiber.Handler) {
	h := r.Group("/chat/v1")
	h.Use(authGuard)
	h.Post("/sessions", c.CreateSession)
	h.Get("/sessions", c.ListSessions)
	h.Get("/sessions/:id", c.GetSession)
	h.Put("/sessions/:id", c.SaveTranscript)
	h.Delete("/sessions/:id", c.DeleteSession)
	h.Get("/activity", c.RecentActivity)
}

// callerUserId reads the identity the auth guard placed in Locals. Routes
// here are never registered without the guard, so a missing or mangled
// value means the request never passed it.
func callerUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, apperror.New(apperror.KindUnauthenticated, "missing identity")
	}
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.New(apperror.KindUnauthenticated, "invalid identity")
	}
	return userId, nil
}

func sessionIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		// An unparseable id can never match an owned record.
		return uuid.Nil, apperror.New(apperror.KindNotFound, "chat not found")
	}
	return id, nil
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId, err := callerUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create chat", res))
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId, err := callerUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.ListSessions(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list chats", res))
}

func (c *chatController) GetSession(ctx *fiber.Ctx) error {
	userId, err := callerUserId(ctx)
	if err != nil {
		return err
	}

	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.GetSession(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show chat", res))
}

func (c *chatController) SaveTranscript(ctx *fiber.Ctx) error {
	userId, err := callerUserId(ctx)
	if err != nil {
		return err
	}

	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SaveTranscriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SaveTranscript(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update chat", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	userId, err := callerUserId(ctx)
	if err != nil {
		return err
	}

	id, err := sessionIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.DeleteSession(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete chat", res))
}

func (c *chatController) RecentActivity(ctx *fiber.Ctx) error {
	userId, err := callerUserId(ctx)
	if err != nil {
		return err
	}

	res := c.activityService.Recent(ctx.Context(), userId)
	return ctx.JSON(serverutils.SuccessResponse("Success list activity", res))
}
