package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// RatingBucket is one entry of the rating distribution. The JSON key mirrors
// the aggregation output so existing dashboards keep working.
type RatingBucket struct {
	Rating int   `json:"_id" bson:"_id"`
	Count  int64 `json:"count" bson:"count"`
}

type FeedbackStats struct {
	TotalFeedbacks     int64          `json:"totalFeedbacks"`
	AverageRating      AverageRating  `json:"averageRating"`
	RatingDistribution []RatingBucket `json:"ratingDistribution"`
}

// AverageRating is the mean rating rounded to one decimal. It encodes as a
// string such as "4.3", or as the number 0 when there is nothing to average.
type AverageRating struct {
	Value float64
	Valid bool
}

// NewAverageRating rounds mean half away from zero to one decimal.
func NewAverageRating(mean float64) AverageRating {
	return AverageRating{Value: math.Round(mean*10) / 10, Valid: true}
}

func (a AverageRating) String() string {
	if !a.Valid {
		return "0"
	}
	return strconv.FormatFloat(a.Value, 'f', 1, 64)
}

func (a AverageRating) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("0"), nil
	}
	return json.Marshal(a.String())
}

func (a *AverageRating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = AverageRating{}
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid average rating %q: %w", raw, err)
	}
	if v == 0 {
		*a = AverageRating{}
		return nil
	}
	*a = NewAverageRating(v)
	return nil
}
