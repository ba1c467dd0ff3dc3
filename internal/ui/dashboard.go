package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/developia-II/feedback-collector/internal/client"
	"github.com/developia-II/feedback-collector/internal/models"
)

const TimestampLayout = "Jan 2, 2006, 03:04 PM"

type SortOption struct {
	Value    string
	Label    string
	Selected bool
}

// Card is one rendered feedback record.
type Card struct {
	ID        string
	Initial   string
	Name      string
	Message   string
	Rating    int
	Stars     []bool
	Timestamp string
}

type StatsSummary struct {
	Total         int64
	AverageRating string
}

// Dashboard is the view model of the listing half of the page.
type Dashboard struct {
	Loading      bool
	Error        string
	SearchTerm   string
	SortOptions  []SortOption
	SortOrder    string
	ToggleGlyph  string
	ToggleOrder  string
	ToggleTitle  string
	CountLabel   string
	Cards        []Card
	Stats        *StatsSummary
	EmptyTitle   string
	EmptyMessage string
	ShowEmpty    bool
}

// NewDashboard renders s with timestamps in loc.
func NewDashboard(s client.State, loc *time.Location) Dashboard {
	if loc == nil {
		loc = time.Local
	}

	d := Dashboard{
		Loading:     s.Loading,
		Error:       s.Error,
		SearchTerm:  s.SearchTerm,
		SortOrder:   string(s.SortOrder),
		ToggleOrder: string(s.SortOrder.Toggle()),
		SortOptions: sortOptions(s.SortBy),
		CountLabel:  countLabel(len(s.Feedbacks)),
		Cards:       make([]Card, 0, len(s.Feedbacks)),
	}

	if s.SortOrder == models.OrderAsc {
		d.ToggleGlyph, d.ToggleTitle = "↑", "Sort descending"
	} else {
		d.ToggleGlyph, d.ToggleTitle = "↓", "Sort ascending"
	}

	for _, fb := range s.Feedbacks {
		d.Cards = append(d.Cards, NewCard(fb, loc))
	}

	if s.Stats != nil {
		d.Stats = &StatsSummary{
			Total:         s.Stats.TotalFeedbacks,
			AverageRating: s.Stats.AverageRating.String(),
		}
	}

	// A failed reload keeps the previous cards under the error banner.
	if !s.Loading && s.Error == "" && len(s.Feedbacks) == 0 {
		d.ShowEmpty = true
		d.EmptyTitle = "No feedbacks yet"
		if s.SearchTerm != "" {
			d.EmptyMessage = "No feedbacks match your search criteria."
		} else {
			d.EmptyMessage = "Be the first to share your feedback!"
		}
	}
	return d
}

func (d Dashboard) ShowCards() bool {
	return !d.Loading && len(d.Cards) > 0
}

func NewCard(fb models.Feedback, loc *time.Location) Card {
	stars := make([]bool, 5)
	for i := range stars {
		stars[i] = i < fb.Rating
	}
	return Card{
		ID:        fb.ID.Hex(),
		Initial:   initial(fb.Name),
		Name:      fb.Name,
		Message:   fb.Message,
		Rating:    fb.Rating,
		Stars:     stars,
		Timestamp: fb.CreatedAt.In(loc).Format(TimestampLayout),
	}
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r))
}

func countLabel(n int) string {
	if n == 1 {
		return "1 feedback collected"
	}
	return fmt.Sprintf("%d feedbacks collected", n)
}

func sortOptions(selected models.SortField) []SortOption {
	opts := []SortOption{
		{Value: string(models.SortByCreatedAt), Label: "Date"},
		{Value: string(models.SortByRating), Label: "Rating"},
		{Value: string(models.SortByName), Label: "Name"},
	}
	for i := range opts {
		opts[i].Selected = opts[i].Value == string(selected)
	}
	return opts
}
