//go:build integration

package mongostore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developia-II/feedback-collector/internal/database"
	"github.com/developia-II/feedback-collector/internal/logger"
	"github.com/developia-II/feedback-collector/internal/models"
)

func startMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestStoreAgainstMongo(t *testing.T) {
	logger.IsTest = true
	uri := startMongo(t)
	ctx := context.Background()

	client, db, err := database.Connect(ctx, uri, "feedback_it")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Disconnect(client) })

	s := New(db, 5*time.Second)
	require.NoError(t, s.EnsureIndexes(ctx))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 105; i++ {
		fb := &models.Feedback{
			ID:        primitive.NewObjectID(),
			Name:      fmt.Sprintf("user-%03d", i),
			Message:   "Plain message body",
			Rating:    i%5 + 1,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if i == 7 {
			fb.Message = "Really GREAT support"
		}
		require.NoError(t, s.Insert(ctx, fb))
	}

	all, err := s.Find(ctx, models.ListQuery{SortBy: models.SortByCreatedAt, Order: models.OrderDesc}, models.MaxListResults)
	require.NoError(t, err)
	assert.Len(t, all, models.MaxListResults)
	assert.Equal(t, "user-104", all[0].Name)

	hits, err := s.Find(ctx, models.ListQuery{Search: "great", SortBy: models.SortByName, Order: models.OrderAsc}, models.MaxListResults)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "user-007", hits[0].Name)

	byRating, err := s.Find(ctx, models.ListQuery{SortBy: models.SortByRating, Order: models.OrderAsc}, models.MaxListResults)
	require.NoError(t, err)
	for i := 1; i < len(byRating); i++ {
		assert.LessOrEqual(t, byRating[i-1].Rating, byRating[i].Rating)
	}

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(105), n)

	avg, ok, err := s.AverageRating(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, 3.0, avg, 1e-9)

	dist, err := s.RatingDistribution(ctx)
	require.NoError(t, err)
	var total int64
	for _, b := range dist {
		total += b.Count
	}
	assert.Equal(t, n, total)
	assert.NoError(t, s.Ping(ctx))
}
