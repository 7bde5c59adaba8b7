package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nulzo/homework-helper-api/internal/analytics"
	"github.com/nulzo/homework-helper-api/internal/config"
	"github.com/nulzo/homework-helper-api/internal/gateway"
	"github.com/nulzo/homework-helper-api/internal/llm"
	"github.com/nulzo/homework-helper-api/internal/platform/logger"
	"github.com/nulzo/homework-helper-api/internal/platform/otel"
	"github.com/nulzo/homework-helper-api/internal/server"
	"github.com/nulzo/homework-helper-api/internal/server/validator"
	"github.com/nulzo/homework-helper-api/internal/store"
	"github.com/nulzo/homework-helper-api/internal/store/sqlite"
	"github.com/nulzo/homework-helper-api/internal/version"
	"go.uber.org/zap"

	// Import providers to trigger init() registration
	_ "github.com/nulzo/homework-helper-api/internal/llm/gemini"
	_ "github.com/nulzo/homework-helper-api/internal/llm/groq"
)

func main() {
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	log := logger.Get()

	version.CheckForUpdates()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	validator.InitValidator()

	shutdownTracer, err := otel.InitTracer("homework-helper", log, os.Stdout)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}

	// Dispatch history store; the gateway works without it
	var repo store.Repository
	var ingestor analytics.Ingestor = analytics.NopIngestor{}
	if cfg.Store.Enabled {
		repo, err = sqlite.NewSQLiteStorage(cfg.Store.DSN)
		if err != nil {
			log.Fatal("Failed to open request log store", zap.Error(err))
		}
		ingestor = analytics.NewIngestor(log, repo)
	}

	ingestCtx, cancelIngest := context.WithCancel(context.Background())
	ingestor.Start(ingestCtx)

	svc := gateway.NewService(log, repo, ingestor, gateway.NewCredentials(cfg.Providers))

	for _, pCfg := range cfg.Providers {
		p, err := llm.New(pCfg)
		if err != nil {
			log.Warn("Failed to create provider",
				zap.String("id", pCfg.ID),
				zap.String("type", pCfg.Type),
				zap.Error(err),
			)
			continue
		}
		svc.RegisterProvider(p)
		log.Info("Registered provider",
			zap.String("name", pCfg.Name),
			zap.String("type", pCfg.Type),
			zap.Bool("credentialed", pCfg.APIKey != ""),
		)
	}

	srv := server.New(cfg, log, svc)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Handler(),
	}

	go func() {
		log.Info("Starting Homework Helper Gateway", zap.String("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	// Stop drains the buffer; cancel only after so the worker does not
	// exit before the final flush
	ingestor.Stop()
	cancelIngest()

	if repo != nil {
		_ = repo.Close()
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("Tracer shutdown failed", zap.Error(err))
	}
}
