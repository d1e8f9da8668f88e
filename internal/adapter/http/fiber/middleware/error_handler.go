package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gridvolt/stationd/internal/domain"
)

// ErrorHandler converts domain errors bubbling out of handlers into the
// status codes the API promises. Internal causes are logged, never returned.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		code := statusFor(err)

		if code == fiber.StatusInternalServerError {
			log.Error("Internal Server Error",
				zap.Error(err),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()))
			return c.Status(code).JSON(fiber.Map{"error": "An unexpected error occurred."})
		}

		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}

func statusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	switch domain.KindOf(err) {
	case domain.ErrKindNotFound:
		return fiber.StatusNotFound
	case domain.ErrKindConstraint, domain.ErrKindIntegrity:
		return fiber.StatusBadRequest
	case domain.ErrKindUnauthorized:
		return fiber.StatusUnauthorized
	case domain.ErrKindForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}
