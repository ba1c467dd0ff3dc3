// Package metrics exposes Prometheus instrumentation for the API server.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/developia-II/feedback-collector/internal/apperrors"
)

const (
	OpList   = "list"
	OpCreate = "create"
	OpStats  = "stats"

	OutcomeSuccess       = "success"
	OutcomeInvalid       = "invalid"
	OutcomeStoreFailure  = "store_failure"
	OutcomeInternalError = "error"
)

// Metrics owns its registry so several servers can run in one process (tests).
type Metrics struct {
	registry        *prometheus.Registry
	operations      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry: reg,
		operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_operations_total",
			Help: "Feedback operations by kind and outcome",
		}, []string{"operation", "outcome"}),
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "feedback_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveOperation counts one operation, classifying err into an outcome.
func (m *Metrics) ObserveOperation(op string, err error) {
	m.operations.WithLabelValues(op, outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	appErr, ok := apperrors.As(err)
	if !ok {
		return OutcomeInternalError
	}
	switch appErr.Type {
	case apperrors.ValidationError, apperrors.StoreValidationError, apperrors.BadRequestError:
		return OutcomeInvalid
	case apperrors.DatabaseError:
		return OutcomeStoreFailure
	default:
		return OutcomeInternalError
	}
}

// Middleware records the duration of every request. The status of a failed
// handler is taken from its error since the error handler runs afterwards.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = StatusFromError(err)
		}
		route := c.Route().Path
		m.requestDuration.
			WithLabelValues(c.Method(), route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

// StatusFromError maps a handler error to the HTTP status it will produce.
func StatusFromError(err error) int {
	if appErr, ok := apperrors.As(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
