package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/developia-II/feedback-collector/internal/client"
	"github.com/developia-II/feedback-collector/internal/config"
	"github.com/developia-II/feedback-collector/internal/logger"
	"github.com/developia-II/feedback-collector/internal/ui"
)

func main() {
	cfg, err := config.LoadWeb()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg.LoggerOptions())
	log := logger.GetLogger()
	defer logger.Close()
	cfg.LogSummary()

	srv, err := ui.NewServer(ui.ServerOptions{
		API:       client.NewAPIClient(cfg.APIURL, cfg.RequestTimeout()),
		AccessLog: true,
	})
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Errorw("Web server shutdown failed", "error", err)
		}
	}()

	log.Infow("Web front end starting", "port", cfg.WebPort, "api_url", cfg.APIURL)
	if err := srv.Listen(":" + cfg.WebPort); err != nil {
		log.Errorw("Web server stopped", "error", err)
	}
}
