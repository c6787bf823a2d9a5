package serverutils

import (
	"errors"

	"ask-backend/internal/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors returned by controllers into the
// JSON error envelope. Typed application errors decide the status code;
// anything else is a 500.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			payload := fiber.Map{"error": appErr.Message}
			if appErr.Cause != nil {
				payload["details"] = appErr.Cause.Error()
			}
			return ctx.Status(statusForKind(appErr.Kind)).JSON(payload)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"details": err.Error(),
		})
	}
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindSessionNotFound:
		// The service this replaced answered 500 here; 404 is the honest
		// status for an unknown handle.
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
