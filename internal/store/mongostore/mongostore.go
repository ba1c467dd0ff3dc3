// Package mongostore implements store.FeedbackStore on a MongoDB collection.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/developia-II/feedback-collector/internal/models"
	"github.com/developia-II/feedback-collector/internal/store"
)

const CollectionName = "feedbacks"

var _ store.FeedbackStore = (*Store)(nil)

type Store struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// New returns a store over db's feedbacks collection. Every operation is
// bounded by timeout in addition to the caller's context.
func New(db *mongo.Database, timeout time.Duration) *Store {
	return &Store{coll: db.Collection(CollectionName), timeout: timeout}
}

func (s *Store) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.timeout)
}

// EnsureIndexes creates the indexes used by the sortable fields.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create feedback indexes: %w", err)
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, fb *models.Feedback) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, fb); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, q models.ListQuery, limit int) ([]models.Feedback, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	findOpts := options.Find().SetSort(buildSort(q))
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cursor, err := s.coll.Find(ctx, buildFilter(q.Search), findOpts)
	if err != nil {
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	defer cursor.Close(ctx)

	feedbacks := []models.Feedback{}
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return feedbacks, nil
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return n, nil
}

func (s *Store) AverageRating(ctx context.Context) (float64, bool, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cursor, err := s.coll.Aggregate(ctx, averagePipeline())
	if err != nil {
		return 0, false, fmt.Errorf("aggregate average rating: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		AvgRating *float64 `bson:"avgRating"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, false, fmt.Errorf("decode average rating: %w", err)
	}
	if len(rows) == 0 || rows[0].AvgRating == nil {
		return 0, false, nil
	}
	return *rows[0].AvgRating, true, nil
}

func (s *Store) RatingDistribution(ctx context.Context) ([]models.RatingBucket, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cursor, err := s.coll.Aggregate(ctx, distributionPipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate rating distribution: %w", err)
	}
	defer cursor.Close(ctx)

	buckets := []models.RatingBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode rating distribution: %w", err)
	}
	return buckets, nil
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	return s.coll.Database().Client().Ping(ctx, readpref.Primary())
}
