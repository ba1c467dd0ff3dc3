package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxListResults caps every listing; records past the cap are not returned.
const MaxListResults = 100

type Feedback struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Message   string             `json:"message" bson:"message"`
	Rating    int                `json:"rating" bson:"rating"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// FeedbackInput is the body of a submission. Rating is a pointer so a missing
// rating can be told apart from zero.
type FeedbackInput struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Message string   `json:"message" validate:"required,max=1000"`
	Rating  *float64 `json:"rating" validate:"required,min=1,max=5,wholenumber"`
}

// Trimmed returns a copy of the input with surrounding whitespace removed from
// the text fields.
func (in FeedbackInput) Trimmed() FeedbackInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Message = strings.TrimSpace(in.Message)
	return in
}

// UnmarshalJSON accepts the rating as a number or a numeric string. An
// explicit null or empty string decodes to zero so it fails the range check
// rather than the required check.
func (in *FeedbackInput) UnmarshalJSON(data []byte) error {
	type plain FeedbackInput
	var raw struct {
		plain
		Rating json.RawMessage `json:"rating"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*in = FeedbackInput(raw.plain)
	in.Rating = nil

	rating := bytes.TrimSpace(raw.Rating)
	switch {
	case len(rating) == 0:
		return nil
	case bytes.Equal(rating, []byte("null")):
		in.Rating = RatingPtr(0)
		return nil
	case rating[0] == '"':
		var s string
		if err := json.Unmarshal(rating, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			in.Rating = RatingPtr(0)
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", s)
		}
		in.Rating = &f
		return nil
	default:
		var f float64
		if err := json.Unmarshal(rating, &f); err != nil {
			return fmt.Errorf("rating must be a number: %w", err)
		}
		in.Rating = &f
		return nil
	}
}

// RatingPtr is a convenience for building inputs.
func RatingPtr(r float64) *float64 {
	return &r
}

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByRating    SortField = "rating"
	SortByName      SortField = "name"
)

// ParseSortField maps a query value to a sortable field, defaulting to createdAt.
func ParseSortField(s string) SortField {
	switch SortField(s) {
	case SortByRating:
		return SortByRating
	case SortByName:
		return SortByName
	default:
		return SortByCreatedAt
	}
}

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortOrder treats anything other than "asc" as descending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// Toggle returns the opposite direction.
func (o SortOrder) Toggle() SortOrder {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

type ListQuery struct {
	Search string
	SortBy SortField
	Order  SortOrder
}

// Normalize fills defaults and drops unknown sort values. The search term is
// matched as given, surrounding whitespace included.
func (q ListQuery) Normalize() ListQuery {
	q.SortBy = ParseSortField(string(q.SortBy))
	q.Order = ParseSortOrder(string(q.Order))
	return q
}
