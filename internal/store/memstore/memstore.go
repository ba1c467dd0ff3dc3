// Package memstore is an in-process FeedbackStore with the same query
// semantics as the MongoDB store. It backs tests and STORE_DRIVER=memory.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/developia-II/feedback-collector/internal/models"
	"github.com/developia-II/feedback-collector/internal/store"
)

var _ store.FeedbackStore = (*Store)(nil)

type Store struct {
	mu   sync.RWMutex
	docs []models.Feedback
}

func New(seed ...models.Feedback) *Store {
	docs := make([]models.Feedback, len(seed))
	copy(docs, seed)
	return &Store{docs: docs}
}

func (s *Store) Insert(_ context.Context, fb *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, *fb)
	return nil
}

func (s *Store) Find(_ context.Context, q models.ListQuery, limit int) ([]models.Feedback, error) {
	s.mu.RLock()
	matched := make([]models.Feedback, 0, len(s.docs))
	term := strings.ToLower(q.Search)
	for _, fb := range s.docs {
		if term == "" ||
			strings.Contains(strings.ToLower(fb.Name), term) ||
			strings.Contains(strings.ToLower(fb.Message), term) {
			matched = append(matched, fb)
		}
	}
	s.mu.RUnlock()

	less := lessFunc(q.SortBy)
	desc := q.Order != models.OrderAsc
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return less(matched[j], matched[i])
		}
		return less(matched[i], matched[j])
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// lessFunc orders by field, then by id so equal keys have a stable order.
func lessFunc(field models.SortField) func(a, b models.Feedback) bool {
	byID := func(a, b models.Feedback) bool {
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	}
	switch field {
	case models.SortByRating:
		return func(a, b models.Feedback) bool {
			if a.Rating != b.Rating {
				return a.Rating < b.Rating
			}
			return byID(a, b)
		}
	case models.SortByName:
		return func(a, b models.Feedback) bool {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return byID(a, b)
		}
	default:
		return func(a, b models.Feedback) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return byID(a, b)
		}
	}
}

func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.docs)), nil
}

func (s *Store) AverageRating(_ context.Context) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.docs) == 0 {
		return 0, false, nil
	}
	var sum int
	for _, fb := range s.docs {
		sum += fb.Rating
	}
	return float64(sum) / float64(len(s.docs)), true, nil
}

func (s *Store) RatingDistribution(_ context.Context) ([]models.RatingBucket, error) {
	s.mu.RLock()
	counts := make(map[int]int64)
	for _, fb := range s.docs {
		counts[fb.Rating]++
	}
	s.mu.RUnlock()

	buckets := make([]models.RatingBucket, 0, len(counts))
	for rating, n := range counts {
		buckets = append(buckets, models.RatingBucket{Rating: rating, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Rating < buckets[j].Rating
	})
	return buckets, nil
}

func (s *Store) Ping(_ context.Context) error {
	return nil
}
