package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/developia-II/feedback-collector/internal/apperrors"
	"github.com/developia-II/feedback-collector/internal/logger"
	"github.com/developia-II/feedback-collector/internal/metrics"
	"github.com/developia-II/feedback-collector/internal/models"
)

const MsgFeedbackCreated = "Feedback submitted successfully!"

// FeedbackService is the repository layer the handlers depend on.
type FeedbackService interface {
	List(ctx context.Context, q models.ListQuery) ([]models.Feedback, error)
	Create(ctx context.Context, in models.FeedbackInput) (*models.Feedback, error)
	Stats(ctx context.Context) (*models.FeedbackStats, error)
}

type FeedbackHandler struct {
	service FeedbackService
	metrics *metrics.Metrics
}

func NewFeedbackHandler(service FeedbackService, m *metrics.Metrics) *FeedbackHandler {
	return &FeedbackHandler{service: service, metrics: m}
}

func (h *FeedbackHandler) observe(op string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveOperation(op, err)
	}
}

// ListFeedback handles GET /api/feedback?search=&sortBy=&order=
func (h *FeedbackHandler) ListFeedback(c *fiber.Ctx) error {
	q := models.ListQuery{
		Search: c.Query("search"),
		SortBy: models.SortField(c.Query("sortBy", string(models.SortByCreatedAt))),
		Order:  models.SortOrder(c.Query("order", string(models.OrderDesc))),
	}

	feedbacks, err := h.service.List(c.UserContext(), q)
	if err != nil {
		appErr := apperrors.Database(err, "Failed to fetch feedback")
		h.observe(metrics.OpList, appErr)
		return appErr
	}
	h.observe(metrics.OpList, nil)

	return c.JSON(models.ListResponse{
		Success: true,
		Count:   len(feedbacks),
		Data:    feedbacks,
	})
}

// SubmitFeedback handles POST /api/feedback
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var in models.FeedbackInput
	if err := c.BodyParser(&in); err != nil {
		appErr := apperrors.BadRequest("Invalid request body")
		appErr.Raw = err
		h.observe(metrics.OpCreate, appErr)
		return appErr
	}

	fb, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		if _, ok := apperrors.As(err); !ok {
			err = apperrors.Internal(err, "Failed to submit feedback. Please try again.")
		}
		h.observe(metrics.OpCreate, err)
		return err
	}
	h.observe(metrics.OpCreate, nil)

	logger.GetLogger().Infow("Feedback submitted",
		"id", fb.ID.Hex(),
		"rating", fb.Rating,
		"request_id", requestID(c),
	)

	return c.Status(fiber.StatusCreated).JSON(models.CreatedResponse{
		Success: true,
		Message: MsgFeedbackCreated,
		Data:    fb,
	})
}

// GetStats handles GET /api/feedback/stats
func (h *FeedbackHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		appErr := apperrors.Wrap(err, apperrors.DatabaseError, "Failed to fetch statistics")
		h.observe(metrics.OpStats, appErr)
		return appErr
	}
	h.observe(metrics.OpStats, nil)

	return c.JSON(models.StatsResponse{
		Success: true,
		Data:    stats,
	})
}
