package models

// Response bodies shared by the API handlers and the API client.

type ListResponse struct {
	Success bool       `json:"success"`
	Count   int        `json:"count"`
	Data    []Feedback `json:"data"`
}

type CreatedResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *Feedback `json:"data"`
}

type StatsResponse struct {
	Success bool           `json:"success"`
	Data    *FeedbackStats `json:"data"`
}

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}
