package controller

import (
	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperror"
	"ai-chat-be/internal/pkg/serverutils"
	"ai-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILLMController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	ListModels(ctx *fiber.Ctx) error
}

type llmController struct {
	llmService service.ILLMService
}

func NewLLMController(llmService service.ILLMService) ILLMController {
	return &llmController{
		llmService: llmService,
	}
}

func (c *llmController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Generate)
	r.Get("/models", c.ListModels)
}

func (c *llmController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Wrap(apperror.KindValidation, "invalid request body", err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.llmService.Generate(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate response", res))
}

func (c *llmController) ListModels(ctx *fiber.Ctx) error {
	res, err := c.llmService.ListModels(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list models", res))
}
