package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gridvolt/stationd/internal/observability/telemetry"
)

// Metrics counts every request by method, matched route and response status.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}

		telemetry.HTTPRequestsTotal.WithLabelValues(
			c.Method(),
			c.Route().Path,
			strconv.Itoa(status),
		).Inc()

		return err
	}
}
