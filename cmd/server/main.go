package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jlawman/investment-advisory/internal/advisor"
	"github.com/jlawman/investment-advisory/internal/api"
	"github.com/jlawman/investment-advisory/internal/config"
	"github.com/jlawman/investment-advisory/internal/database"
	"github.com/jlawman/investment-advisory/internal/inference"
	"github.com/jlawman/investment-advisory/internal/logging"
	"github.com/jlawman/investment-advisory/internal/metrics"
	"github.com/jlawman/investment-advisory/internal/research"
	"github.com/jlawman/investment-advisory/internal/server"
	"github.com/joho/godotenv"
	"log/slog"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting investment advisory service")

	dbConfig := database.DefaultConfig()
	dbConfig.URL = cfg.Database.URL

	logger.Info("connecting to database")
	db, err := database.Connect(context.Background(), dbConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	// Run pending migrations (non-fatal to allow app to start even if migrations fail)
	if err := database.RunMigrations(db, "./migrations", logger); err != nil {
		logger.Warn("failed to run migrations, continuing anyway", "error", err)
	}

	collector, err := metrics.NewHTTPCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	// Inference call logging
	inferenceLogRepo := database.NewInferenceLogRepository(db)
	inferenceLogger := inference.NewLogger(inferenceLogRepo, logger)

	// Research and advisor clients: real providers when a credential is
	// configured, deterministic mocks otherwise.
	var researcher research.Researcher
	var generator advisor.Generator
	if cfg.Advisor.HasCredential() {
		logger.Info("advisor configured", "provider", cfg.Advisor.Provider, "model", cfg.Advisor.Model)
		researcher = research.NewPerplexityClient(cfg.Advisor, logger, inferenceLogger, collector)
		generator = advisor.NewClient(cfg.Advisor, logger, inferenceLogger, collector)
	} else {
		logger.Warn("no advisor credential configured, using mock research and recommendations")
		researcher = research.NewMockResearcher()
		generator = advisor.NewMockGenerator()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	logger.Info("setting up REST API")
	api.SetupRoutes(mux, db, researcher, generator, cfg.Auth, logger)

	// Serve the frontend for non-API routes
	handler := server.SPAMiddleware(collector.InstrumentHandler(mux), "./web/dist", "./web/dist/index.html")

	srv := server.New(cfg.Server, logger, handler)

	go func() {
		logger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("investment advisory service started")
	logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port))

	waitForSignal(logger)

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
