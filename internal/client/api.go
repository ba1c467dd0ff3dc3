// Package client talks to the feedback API and keeps the dashboard state the
// web front end renders.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/developia-II/feedback-collector/internal/models"
)

const maxErrorPreview = 500

// APIError is a non-2xx answer from the API. Message is the server-provided
// message, empty when the body was not an error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

type ListParams struct {
	Search string
	SortBy models.SortField
	Order  models.SortOrder
}

// APIClient calls the feedback endpoints under baseURL, e.g.
// http://localhost:5000/api/feedback.
type APIClient struct {
	baseURL string
	http    *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *APIClient) List(ctx context.Context, p ListParams) ([]models.Feedback, error) {
	q := url.Values{}
	q.Set("search", p.Search)
	q.Set("sortBy", string(p.SortBy))
	q.Set("order", string(p.Order))

	var resp models.ListResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("list feedback: unsuccessful response")
	}
	if resp.Data == nil {
		resp.Data = []models.Feedback{}
	}
	return resp.Data, nil
}

func (c *APIClient) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	var resp models.StatsResponse
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/stats", nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data == nil {
		return nil, fmt.Errorf("feedback stats: unsuccessful response")
	}
	return resp.Data, nil
}

// Submit posts a new feedback and returns the created response, including the
// server's success message.
func (c *APIClient) Submit(ctx context.Context, in models.FeedbackInput) (*models.CreatedResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode feedback: %w", err)
	}

	var resp models.CreatedResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL, body, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return &resp, nil
}

func (c *APIClient) do(ctx context.Context, method, endpoint string, body []byte, out interface{}) error {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, r)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env models.ErrorEnvelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(raw, out); err != nil {
		preview := string(raw)
		if len(preview) > maxErrorPreview {
			preview = preview[:maxErrorPreview] + "..."
		}
		return fmt.Errorf("invalid JSON from %s: %w; body: %s", endpoint, err, preview)
	}
	return nil
}
