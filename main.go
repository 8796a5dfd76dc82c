package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/specdev/orchestrator/internal/config"
	"github.com/specdev/orchestrator/internal/knowledge"
	"github.com/specdev/orchestrator/internal/service"
	"github.com/specdev/orchestrator/internal/store"
	v1 "github.com/specdev/orchestrator/internal/transport/http/v1"
)

func main() {
	// Load configuration (SPECDEV_CONFIG names an optional YAML file,
	// SPECDEV_* env vars override it)
	cfg, err := config.Load(os.Getenv("SPECDEV_CONFIG"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting orchestrator",
		zap.Int("http_port", cfg.HTTPPort),
		zap.String("data_dir", cfg.DataDir))

	// Initialize store
	st, err := store.NewFileStore(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("failed to initialize store", zap.Error(err))
	}
	defer st.Close()

	// Initialize knowledge base
	kb, err := knowledge.NewService(filepath.Join(cfg.DataDir, "knowledge"), logger)
	if err != nil {
		logger.Fatal("failed to initialize knowledge base", zap.Error(err))
	}

	// Initialize service
	svc := service.New(st, kb, service.Options{
		AutoResearchPrestep:   cfg.AutoResearchPrestep,
		EnableAutomationHooks: cfg.EnableAutomationHooks,
	}, logger)

	// Initialize handler
	h := v1.NewHandler(svc)

	// Create Echo server
	server := echo.New()
	server.HideBanner = true

	// Middleware
	server.Use(middleware.Logger())
	server.Use(middleware.Recover())
	server.Use(middleware.CORS())

	// Register routes
	h.RegisterRoutes(server)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	logger.Info("orchestrator API started", zap.Int("port", cfg.HTTPPort))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down orchestrator")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server gracefully", zap.Error(err))
	}

	logger.Info("orchestrator stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
