package serverutils

import (
	"errors"

	"docchat-be/internal/pkg/apperrors"
	"docchat-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler maps service errors onto the wire contract: every failure
// body is {"error": message} with a status matching the error class.
// Anything untyped is logged and flattened to a 500 so internals never
// leak to the client.
func ErrorHandler(sysLogger logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Message})
		}

		var notFoundErr *apperrors.NotFoundError
		if errors.As(err, &notFoundErr) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Message})
		}

		var externalErr *apperrors.ExternalServiceError
		if errors.As(err, &externalErr) {
			sysLogger.Error("http", "external service failure", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": externalErr.Error()})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}

		sysLogger.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
