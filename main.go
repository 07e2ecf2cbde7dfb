package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"metricshub/internal/client"
	"metricshub/internal/config"
	"metricshub/internal/export"
	"metricshub/internal/handlers"
	"metricshub/internal/ingest"
	"metricshub/internal/observability"
	"metricshub/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.Info("Starting Metrics Hub aggregation service")

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		logger.WithError(err).Warn("Settings file unreadable, using defaults")
	}

	// Initialize components
	httpClient := client.NewHTTPClient(cfg, logger)
	orchestrator := ingest.New(cfg, httpClient, logger)
	store := storage.NewMemoryStore()
	exporter := export.NewExporter(cfg.SinkSecret, httpClient, logger)

	// Initialize handlers
	handler := handlers.New(cfg, settings, orchestrator, store, exporter, logger)

	// Setup Gin router
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), observability.Middleware())

	// Health endpoints
	router.GET("/healthz", handler.HealthCheck)
	router.GET("/readyz", handler.ReadinessCheck)

	// Ingestion endpoint
	router.POST("/ingest/run", handler.IngestData)

	// Dashboard endpoints
	router.GET("/dashboard", handler.GetDashboard)
	router.GET("/rankings", handler.GetRankings)
	router.GET("/funnel/acquisition", handler.GetAcquisitionFunnel)
	router.GET("/funnel/qualification", handler.GetQualificationFunnel)
	router.GET("/goal/status", handler.GetGoalStatus)

	// Report endpoints
	router.GET("/report/summary", handler.GetReportSummary)
	router.POST("/export/run", handler.ExportData)

	// Prometheus endpoint
	router.GET("/metrics", observability.Handler())

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
