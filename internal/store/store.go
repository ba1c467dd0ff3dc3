// Package store defines persistence for feedback records.
package store

import (
	"context"

	"github.com/developia-II/feedback-collector/internal/models"
)

// FeedbackStore is the document store holding feedback records. Records are
// only ever inserted and read.
type FeedbackStore interface {
	// Insert persists fb. fb.ID and fb.CreatedAt are set by the caller.
	Insert(ctx context.Context, fb *models.Feedback) error
	// Find returns at most limit records matching q. q is expected to be
	// normalized.
	Find(ctx context.Context, q models.ListQuery, limit int) ([]models.Feedback, error)
	Count(ctx context.Context) (int64, error)
	// AverageRating returns the mean rating; ok is false when there are no records.
	AverageRating(ctx context.Context) (avg float64, ok bool, err error)
	// RatingDistribution returns the count per rating value ordered by rating.
	RatingDistribution(ctx context.Context) ([]models.RatingBucket, error)
	Ping(ctx context.Context) error
}
