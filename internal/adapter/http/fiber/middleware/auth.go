package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/gridvolt/stationd/internal/ports"
)

// AuthRequired resolves the bearer token to a username and stores it under
// c.Locals("username") for downstream handlers.
func AuthRequired(service ports.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization header format"})
		}

		username, err := service.ValidateToken(c.Context(), parts[1])
		if err != nil {
			return err
		}

		c.Locals("username", username)
		c.Locals("token", parts[1])

		return c.Next()
	}
}
