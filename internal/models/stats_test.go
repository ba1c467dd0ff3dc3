package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating_JSON(t *testing.T) {
	b, err := json.Marshal(AverageRating{})
	require.NoError(t, err)
	assert.Equal(t, "0", string(b))

	b, err = json.Marshal(NewAverageRating(4.25))
	require.NoError(t, err)
	assert.Equal(t, `"4.3"`, string(b))

	b, err = json.Marshal(NewAverageRating(4))
	require.NoError(t, err)
	assert.Equal(t, `"4.0"`, string(b))
}

func TestAverageRating_UnmarshalAcceptsBothShapes(t *testing.T) {
	var stats FeedbackStats
	require.NoError(t, json.Unmarshal([]byte(`{"totalFeedbacks":0,"averageRating":0,"ratingDistribution":[]}`), &stats))
	assert.False(t, stats.AverageRating.Valid)

	require.NoError(t, json.Unmarshal([]byte(`{"totalFeedbacks":3,"averageRating":"3.7","ratingDistribution":[{"_id":4,"count":3}]}`), &stats))
	assert.True(t, stats.AverageRating.Valid)
	assert.Equal(t, 3.7, stats.AverageRating.Value)
	assert.Equal(t, []RatingBucket{{Rating: 4, Count: 3}}, stats.RatingDistribution)

	assert.Error(t, json.Unmarshal([]byte(`{"averageRating":"n/a"}`), &stats))
}
