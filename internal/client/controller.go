package client

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/developia-II/feedback-collector/internal/logger"
	"github.com/developia-II/feedback-collector/internal/models"
)

const (
	MsgLoadFailed   = "Failed to load feedbacks. Please check if the server is running."
	MsgSubmitFailed = "Failed to submit feedback. Please try again."
)

// API is the subset of APIClient the controller needs.
type API interface {
	List(ctx context.Context, p ListParams) ([]models.Feedback, error)
	Stats(ctx context.Context) (*models.FeedbackStats, error)
	Submit(ctx context.Context, in models.FeedbackInput) (*models.CreatedResponse, error)
}

// State is a snapshot of what the dashboard shows.
type State struct {
	Feedbacks  []models.Feedback
	Loading    bool
	Error      string
	SearchTerm string
	SortBy     models.SortField
	SortOrder  models.SortOrder
	Stats      *models.FeedbackStats
}

// Event is a user intent handled by Controller.Dispatch.
type Event interface {
	isEvent()
}

type SearchChanged struct{ Term string }
type SortFieldChanged struct{ Field models.SortField }
type SortOrderChanged struct{ Order models.SortOrder }
type SortOrderToggled struct{}
type RefreshRequested struct{}
type SubmitRequested struct{ Input models.FeedbackInput }

func (SearchChanged) isEvent()    {}
func (SortFieldChanged) isEvent() {}
func (SortOrderChanged) isEvent() {}
func (SortOrderToggled) isEvent() {}
func (RefreshRequested) isEvent() {}
func (SubmitRequested) isEvent()  {}

// Result is the outcome of a submission. Other events always succeed; their
// failures are reflected in State.
type Result struct {
	Success bool
	Message string
}

// Controller owns the dashboard state. Every list and stats fetch carries a
// sequence number and only the newest response of each kind is applied.
type Controller struct {
	api API

	mu       sync.Mutex
	state    State
	listSeq  uint64
	statsSeq uint64
}

func NewController(api API) *Controller {
	return &Controller{
		api: api,
		state: State{
			Feedbacks: []models.Feedback{},
			Loading:   true,
			SortBy:    models.SortByCreatedAt,
			SortOrder: models.OrderDesc,
		},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Feedbacks = append([]models.Feedback(nil), c.state.Feedbacks...)
	if c.state.Stats != nil {
		stats := *c.state.Stats
		stats.RatingDistribution = append([]models.RatingBucket(nil), c.state.Stats.RatingDistribution...)
		s.Stats = &stats
	}
	return s
}

// Dispatch applies ev and blocks until the fetches it triggers complete.
func (c *Controller) Dispatch(ctx context.Context, ev Event) Result {
	switch e := ev.(type) {
	case SearchChanged:
		c.update(ctx, func(s *State) { s.SearchTerm = e.Term })
	case SortFieldChanged:
		field := models.ParseSortField(string(e.Field))
		c.update(ctx, func(s *State) { s.SortBy = field })
	case SortOrderChanged:
		order := models.ParseSortOrder(string(e.Order))
		c.update(ctx, func(s *State) { s.SortOrder = order })
	case SortOrderToggled:
		c.update(ctx, func(s *State) { s.SortOrder = s.SortOrder.Toggle() })
	case RefreshRequested:
		c.refresh(ctx)
	case SubmitRequested:
		return c.submit(ctx, e.Input)
	}
	return Result{Success: true}
}

// update changes the query parameters and refetches when they differ.
func (c *Controller) update(ctx context.Context, fn func(s *State)) {
	c.mu.Lock()
	before := [3]string{c.state.SearchTerm, string(c.state.SortBy), string(c.state.SortOrder)}
	fn(&c.state)
	after := [3]string{c.state.SearchTerm, string(c.state.SortBy), string(c.state.SortOrder)}
	c.mu.Unlock()

	if before != after {
		c.refresh(ctx)
	}
}

func (c *Controller) refresh(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error { return c.fetchList(ctx) })
	g.Go(func() error { return c.fetchStats(ctx) })
	if err := g.Wait(); err != nil {
		logger.GetLogger().Debugw("Refresh incomplete", "error", err)
	}
}

func (c *Controller) fetchList(ctx context.Context) error {
	c.mu.Lock()
	c.listSeq++
	seq := c.listSeq
	params := ListParams{Search: c.state.SearchTerm, SortBy: c.state.SortBy, Order: c.state.SortOrder}
	c.state.Loading = true
	c.mu.Unlock()

	feedbacks, err := c.api.List(ctx, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.listSeq {
		return err
	}
	c.state.Loading = false
	if err != nil {
		logger.GetLogger().Errorw("Error fetching feedbacks", "error", err)
		c.state.Error = MsgLoadFailed
		return err
	}
	c.state.Feedbacks = feedbacks
	c.state.Error = ""
	return nil
}

func (c *Controller) fetchStats(ctx context.Context) error {
	c.mu.Lock()
	c.statsSeq++
	seq := c.statsSeq
	c.mu.Unlock()

	stats, err := c.api.Stats(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.statsSeq {
		return err
	}
	if err != nil {
		logger.GetLogger().Errorw("Error fetching stats", "error", err)
		return err
	}
	c.state.Stats = stats
	return nil
}

func (c *Controller) submit(ctx context.Context, in models.FeedbackInput) Result {
	resp, err := c.api.Submit(ctx, in)
	if err != nil {
		logger.GetLogger().Errorw("Error submitting feedback", "error", err)
		msg := MsgSubmitFailed
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		return Result{Success: false, Message: msg}
	}

	c.refresh(ctx)
	return Result{Success: true, Message: resp.Message}
}
