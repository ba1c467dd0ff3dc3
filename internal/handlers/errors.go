package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/developia-II/feedback-collector/internal/apperrors"
	"github.com/developia-II/feedback-collector/internal/logger"
	"github.com/developia-II/feedback-collector/internal/models"
	"github.com/developia-II/feedback-collector/utils"
)

const msgUnexpected = "Something went wrong on the server"

// ErrorHandler turns any error returned by a handler into the JSON error
// envelope. With exposeDetail set, store failures that carry a summary report
// the raw cause as their message.
func ErrorHandler(exposeDetail bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.GetLogger()
		status := fiber.StatusInternalServerError
		env := models.ErrorEnvelope{Message: msgUnexpected}

		var fe *fiber.Error
		if appErr, ok := apperrors.As(err); ok {
			status = appErr.HTTPStatus
			env.Error = appErr.Summary
			env.Message = appErr.Message
			if exposeDetail && appErr.Summary != "" && appErr.Raw != nil {
				env.Message = appErr.Raw.Error()
			}
		} else if errors.As(err, &fe) {
			status = fe.Code
			env.Message = fe.Message
		}

		fields := []interface{}{
			"status", status,
			"method", c.Method(),
			"path", c.Path(),
			"request_id", requestID(c),
			"error", err,
		}
		if status >= fiber.StatusInternalServerError {
			log.Errorw("Request failed", fields...)
		} else {
			log.Debugw("Request rejected", fields...)
		}

		return utils.ErrorResponse(c, status, env)
	}
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
