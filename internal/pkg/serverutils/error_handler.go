package serverutils

import (
	"errors"

	"ai-chat-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware translates classified errors bubbling out of
// controllers into the standard response envelope. Failures never terminate
// the process; every kind maps to a status the client can render.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError
		message := "Internal server error"

		switch apperror.KindOf(err) {
		case apperror.KindUnauthenticated:
			status = fiber.StatusUnauthorized
			message = err.Error()
		case apperror.KindNotFound:
			status = fiber.StatusNotFound
			message = err.Error()
		case apperror.KindValidation:
			status = fiber.StatusBadRequest
			message = err.Error()
		case apperror.KindStorageUnavailable:
			status = fiber.StatusServiceUnavailable
			message = err.Error()
		case apperror.KindInferenceUnavailable:
			status = fiber.StatusBadGateway
			message = err.Error()
		default:
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
				message = fiberErr.Message
			}
		}

		return ctx.Status(status).JSON(ErrorResponse(status, message))
	}
}
