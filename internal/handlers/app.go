package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/developia-II/feedback-collector/internal/metrics"
)

type AppOptions struct {
	Service FeedbackService
	Store   Pinger
	Metrics *metrics.Metrics

	// AllowOrigins is passed to the CORS middleware.
	AllowOrigins string
	// ExposeErrorDetail echoes raw store errors to clients. Development only.
	ExposeErrorDetail bool
	// AccessLog enables the request logger middleware.
	AccessLog bool
}

// NewApp builds the API server with its middleware and routes.
func NewApp(opts AppOptions) *fiber.App {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:      "feedback-collector",
		ErrorHandler: ErrorHandler(opts.ExposeErrorDetail),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if opts.AccessLog {
		app.Use(fiberlogger.New(fiberlogger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST",
	}))
	app.Use(opts.Metrics.Middleware())

	feedback := NewFeedbackHandler(opts.Service, opts.Metrics)
	health := NewHealthHandler(opts.Store)

	// Routes
	app.Get("/", health.Root)
	app.Get("/healthz", health.Health)
	app.Get("/metrics", opts.Metrics.Handler())

	api := app.Group("/api")
	api.Get("/feedback", feedback.ListFeedback)
	api.Post("/feedback", feedback.SubmitFeedback)
	api.Get("/feedback/stats", feedback.GetStats)

	return app
}
