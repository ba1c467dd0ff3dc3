package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developia-II/feedback-collector/internal/apperrors"
)

func TestObserveOperation(t *testing.T) {
	m := New()

	m.ObserveOperation(OpCreate, nil)
	m.ObserveOperation(OpCreate, apperrors.ValidationFailed("bad", ""))
	m.ObserveOperation(OpCreate, apperrors.ValidationFailed("bad", ""))
	m.ObserveOperation(OpList, apperrors.Database(errors.New("down"), "Failed to fetch feedback"))
	m.ObserveOperation(OpStats, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpCreate, OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues(OpCreate, OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpList, OutcomeStoreFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(OpStats, OutcomeInternalError)))
}

func TestStatusFromError(t *testing.T) {
	assert.Equal(t, 400, StatusFromError(apperrors.BadRequest("Invalid request body")))
	assert.Equal(t, 404, StatusFromError(fiber.ErrNotFound))
	assert.Equal(t, 500, StatusFromError(errors.New("boom")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/bad", func(c *fiber.Ctx) error { return apperrors.BadRequest("nope") })
	app.Get("/metrics", m.Handler())

	for _, path := range []string{"/ok", "/ok", "/bad"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDuration, "feedback_http_request_duration_seconds"))

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `feedback_http_request_duration_seconds_count{method="GET",route="/ok",status="200"} 2`)
	assert.Contains(t, string(body), `route="/bad",status="400"`)
	assert.Contains(t, string(body), "go_goroutines")
}
