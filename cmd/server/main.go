package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prakriti-health/prakriti-api/pkg/api"
	"github.com/prakriti-health/prakriti-api/pkg/assess"
	"github.com/prakriti-health/prakriti-api/pkg/config"
	"github.com/prakriti-health/prakriti-api/pkg/logging"
	"github.com/prakriti-health/prakriti-api/pkg/model"
	"github.com/prakriti-health/prakriti-api/pkg/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New("prakriti-api")
	logger.SetFormat(cfg.LogFormat)
	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))

	logger.Info("Starting prakriti-api",
		logging.String("environment", cfg.Environment),
		logging.String("port", cfg.Port),
		logging.Component("main"))

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	registry := model.NewRegistry(cfg.ArtifactDir, logger)
	registry.Prewarm()

	assessor := assess.NewAssessor(registry, logger,
		assess.RiskThresholds{
			LowBelow:      cfg.Assessment.RiskLowBelow,
			HighAtOrAbove: cfg.Assessment.RiskHighAtOrAbove,
		},
		cfg.Assessment.TopFeatures)

	server := api.NewServer(cfg, logger, st, assessor)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server", logging.Component("main"))

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err, logging.Component("main"))
	}

	logger.Info("Server exited", logging.Component("main"))
}
