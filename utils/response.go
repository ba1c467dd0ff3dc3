package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/developia-II/feedback-collector/internal/models"
)

// ErrorResponse writes the error envelope with the given status. Success is
// always false.
func ErrorResponse(c *fiber.Ctx, status int, env models.ErrorEnvelope) error {
	env.Success = false
	return c.Status(status).JSON(env)
}
