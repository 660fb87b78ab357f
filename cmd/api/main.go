package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/demianvselko/empatspeech-demo-sub000/internal/infrastructure/di"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/router"
	"github.com/demianvselko/empatspeech-demo-sub000/internal/interface/server"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/config"
	"github.com/demianvselko/empatspeech-demo-sub000/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger setup
	logCloser, err := logger.Setup(logger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		slog.Error("failed to setup logger", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize DI Container
	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	handlers := di.NewHandlers(container)
	middlewares := di.NewMiddlewares(container)

	// Setup Server
	serverConfig := server.DefaultConfig()
	serverConfig.Port = cfg.Server.Port
	serverConfig.Debug = cfg.Server.Debug
	serverConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	serverConfig.CORSOrigins = cfg.Security.CORSOrigins
	serverConfig.EnableHSTS = cfg.Security.EnableHSTS
	srv := server.NewServer(serverConfig)

	// Setup Router
	router.NewRouter(srv.Echo(), handlers, middlewares).Setup()

	// Start background workers
	workerMgr := di.NewWorkerManager(container, handlers.Hub)
	workerMgr.Start(ctx)

	// Start server
	slog.Info("starting server",
		"port", cfg.Server.Port,
		"postgres", cfg.UsePostgres(),
		"redis", cfg.UseRedis(),
		"kafka", cfg.UseKafka(),
		"auth", cfg.AuthEnabled(),
		"live_state", cfg.Live.StateBackend,
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	// Graceful shutdown
	<-ctx.Done()

	slog.Info("shutting down server...")
	workerMgr.Shutdown(serverConfig.ShutdownTimeout)

	if err := srv.Shutdown(context.Background()); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
