package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/developia-II/feedback-collector/internal/client"
	"github.com/developia-II/feedback-collector/internal/models"
)

func TestNewCard(t *testing.T) {
	fb := models.Feedback{
		ID:        primitive.NewObjectID(),
		Name:      "ada",
		Message:   "Great service overall",
		Rating:    4,
		CreatedAt: time.Date(2024, 3, 9, 15, 4, 0, 0, time.UTC),
	}

	card := NewCard(fb, time.UTC)
	assert.Equal(t, "A", card.Initial)
	assert.Equal(t, []bool{true, true, true, true, false}, card.Stars)
	assert.Equal(t, "Mar 9, 2024, 03:04 PM", card.Timestamp)
	assert.Equal(t, fb.ID.Hex(), card.ID)

	assert.Equal(t, "É", initial("  émile"))
	assert.Equal(t, "", initial(""))
}

func TestNewDashboard_States(t *testing.T) {
	base := client.State{SortBy: models.SortByCreatedAt, SortOrder: models.OrderDesc, Feedbacks: []models.Feedback{}}

	t.Run("loading", func(t *testing.T) {
		s := base
		s.Loading = true
		d := NewDashboard(s, time.UTC)
		assert.True(t, d.Loading)
		assert.False(t, d.ShowEmpty)
		assert.False(t, d.ShowCards())
	})

	t.Run("empty without search", func(t *testing.T) {
		d := NewDashboard(base, time.UTC)
		assert.True(t, d.ShowEmpty)
		assert.Equal(t, "No feedbacks yet", d.EmptyTitle)
		assert.Equal(t, "Be the first to share your feedback!", d.EmptyMessage)
		assert.Equal(t, "0 feedbacks collected", d.CountLabel)
	})

	t.Run("empty with search", func(t *testing.T) {
		s := base
		s.SearchTerm = "zzz"
		d := NewDashboard(s, time.UTC)
		assert.Equal(t, "No feedbacks match your search criteria.", d.EmptyMessage)
	})

	t.Run("error hides empty state", func(t *testing.T) {
		s := base
		s.Error = client.MsgLoadFailed
		d := NewDashboard(s, time.UTC)
		assert.False(t, d.ShowEmpty)
		assert.Equal(t, client.MsgLoadFailed, d.Error)
	})

	t.Run("error keeps previous cards", func(t *testing.T) {
		s := base
		s.Error = client.MsgLoadFailed
		s.Feedbacks = []models.Feedback{{Name: "Ada", Rating: 5}}
		d := NewDashboard(s, time.UTC)
		assert.True(t, d.ShowCards())
		assert.Equal(t, "1 feedback collected", d.CountLabel)
	})
}

func TestNewDashboard_Controls(t *testing.T) {
	s := client.State{
		SortBy:    models.SortByRating,
		SortOrder: models.OrderAsc,
		Stats: &models.FeedbackStats{
			TotalFeedbacks: 3,
			AverageRating:  models.NewAverageRating(13.0 / 3.0),
		},
	}

	d := NewDashboard(s, time.UTC)
	assert.Equal(t, "↑", d.ToggleGlyph)
	assert.Equal(t, "desc", d.ToggleOrder)
	assert.Equal(t, "Sort descending", d.ToggleTitle)

	require.Len(t, d.SortOptions, 3)
	assert.Equal(t, []string{"Date", "Rating", "Name"}, []string{d.SortOptions[0].Label, d.SortOptions[1].Label, d.SortOptions[2].Label})
	assert.True(t, d.SortOptions[1].Selected)
	assert.False(t, d.SortOptions[0].Selected)

	require.NotNil(t, d.Stats)
	assert.Equal(t, int64(3), d.Stats.Total)
	assert.Equal(t, "4.3", d.Stats.AverageRating)

	s.SortOrder = models.OrderDesc
	d = NewDashboard(s, time.UTC)
	assert.Equal(t, "↓", d.ToggleGlyph)
	assert.Equal(t, "asc", d.ToggleOrder)
}
