package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkanyika/shamba/internal/advisor"
	advclaude "github.com/mkanyika/shamba/internal/advisor/claude"
	advmock "github.com/mkanyika/shamba/internal/advisor/mock"
	"github.com/mkanyika/shamba/internal/config"
	"github.com/mkanyika/shamba/internal/db"
	imglocal "github.com/mkanyika/shamba/internal/imagestore/local"
	"github.com/mkanyika/shamba/internal/logging"
	"github.com/mkanyika/shamba/internal/service"
	"github.com/mkanyika/shamba/internal/store"
	"github.com/mkanyika/shamba/internal/weather"
	"github.com/mkanyika/shamba/internal/web"
)

func main() {
	// A missing .env file is fine; environment variables win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	images, err := imglocal.New(cfg.ImagePath)
	if err != nil {
		logger.Error("failed to initialize image store", "error", err)
		os.Exit(1)
	}

	farmService := service.NewFarmService(
		store.NewFarmStore(database),
		store.NewActivityStore(database),
		store.NewExpenseStore(database),
		store.NewSaleStore(database),
		store.NewHealthStore(database),
		newAdvisor(cfg, logger),
		images,
		logger,
	)

	var forecaster web.Forecaster
	if cfg.WeatherAPIKey != "" {
		forecaster = weather.NewClientWithBaseURL(cfg.WeatherAPIKey, cfg.WeatherBaseURL)
	} else {
		logger.Warn("WEATHER_API_KEY not set, weather endpoint disabled")
	}

	server := web.NewServer(farmService, store.NewUserStore(database), forecaster, logger)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("starting server", "addr", cfg.ListenAddr, "advisor", cfg.AdvisorBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
}

func newAdvisor(cfg *config.Config, logger *slog.Logger) advisor.Advisor {
	switch cfg.AdvisorBackend {
	case "claude":
		logger.Info("using Claude advisor backend", "model", cfg.ClaudeModel)
		return advclaude.New(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	default:
		logger.Info("using mock advisor backend")
		return advmock.New()
	}
}
