package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/developia-II/feedback-collector/internal/config"
	"github.com/developia-II/feedback-collector/internal/database"
	"github.com/developia-II/feedback-collector/internal/handlers"
	"github.com/developia-II/feedback-collector/internal/logger"
	"github.com/developia-II/feedback-collector/internal/metrics"
	"github.com/developia-II/feedback-collector/internal/services"
	"github.com/developia-II/feedback-collector/internal/store"
	"github.com/developia-II/feedback-collector/internal/store/memstore"
	"github.com/developia-II/feedback-collector/internal/store/mongostore"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log := logger.GetLogger()
		if errors.Is(err, config.ErrMissingMongoURI) {
			log.Fatal("MONGODB_URI is not set. Add it to your environment or .env file.")
		}
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(cfg.LoggerOptions())
	log := logger.GetLogger()
	defer logger.Close()
	cfg.LogSummary()
	if cfg.IsDevelopment() {
		log.Warn("ENVIRONMENT is development; store error details are returned to API clients")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize store
	var (
		st     store.FeedbackStore
		client *mongo.Client
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Warn("Using in-memory store; feedback is lost on restart")
		st = memstore.New()
	default:
		var db *mongo.Database
		client, db, err = database.Connect(ctx, cfg.MongoURI, cfg.DBName)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		ms := mongostore.New(db, cfg.RequestTimeout())
		if err := ms.EnsureIndexes(ctx); err != nil {
			log.Warnw("Failed to ensure indexes", "error", err)
		}
		st = ms
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Errorw("Failed to disconnect from database", "error", err)
		}
	}()

	app := handlers.NewApp(handlers.AppOptions{
		Service:           services.NewFeedbackService(st),
		Store:             st,
		Metrics:           metrics.New(),
		AllowOrigins:      cfg.FrontendURL,
		ExposeErrorDetail: cfg.IsDevelopment(),
		AccessLog:         true,
	})

	go func() {
		<-ctx.Done()
		log.Info("Shutting down server")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Errorw("Server shutdown failed", "error", err)
		}
	}()

	// Start server
	log.Infow("Server starting", "port", cfg.Port, "environment", cfg.Environment, "store", cfg.StoreDriver)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Errorw("Server stopped", "error", err)
	}
}
