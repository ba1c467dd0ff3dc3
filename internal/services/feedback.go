package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developia-II/feedback-collector/internal/apperrors"
	"github.com/developia-II/feedback-collector/internal/models"
	"github.com/developia-II/feedback-collector/internal/store"
)

// FeedbackService validates submissions, maps them to stored records and
// computes the dashboard statistics.
type FeedbackService struct {
	store store.FeedbackStore
	now   func() time.Time
}

func NewFeedbackService(s store.FeedbackStore) *FeedbackService {
	return &FeedbackService{
		store: s,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns up to models.MaxListResults records matching q.
func (s *FeedbackService) List(ctx context.Context, q models.ListQuery) ([]models.Feedback, error) {
	feedbacks, err := s.store.Find(ctx, q.Normalize(), models.MaxListResults)
	if err != nil {
		return nil, err
	}
	if feedbacks == nil {
		feedbacks = []models.Feedback{}
	}
	return feedbacks, nil
}

// Create validates in and persists it. Validation failures are returned as
// *apperrors.AppError; missing fields take precedence over range errors.
func (s *FeedbackService) Create(ctx context.Context, in models.FeedbackInput) (*models.Feedback, error) {
	res := models.ValidateFeedback(in)
	if !res.OK() {
		switch {
		case res.MissingRequired():
			return nil, apperrors.ValidationFailed(models.MsgRequiredFields, res.Message())
		case res.RatingOutOfRange():
			return nil, apperrors.ValidationFailed(models.MsgRatingRange, "")
		default:
			return nil, apperrors.StoreValidationFailed(res.Messages())
		}
	}

	in = in.Trimmed()
	fb := &models.Feedback{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Message:   in.Message,
		Rating:    int(*in.Rating),
		CreatedAt: s.now().Truncate(time.Millisecond),
	}

	if err := s.store.Insert(ctx, fb); err != nil {
		return nil, err
	}
	return fb, nil
}

func (s *FeedbackService) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.FeedbackStats{TotalFeedbacks: total}

	avg, ok, err := s.store.AverageRating(ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		stats.AverageRating = models.NewAverageRating(avg)
	}

	dist, err := s.store.RatingDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("rating distribution: %w", err)
	}
	if dist == nil {
		dist = []models.RatingBucket{}
	}
	stats.RatingDistribution = dist
	return stats, nil
}

// Ping reports whether the backing store is reachable.
func (s *FeedbackService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
