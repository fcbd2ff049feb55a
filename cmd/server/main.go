package main

import (
	"alcyxob/workout-tracker/internal/api"
	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/metrics"
	"alcyxob/workout-tracker/internal/repository/driver"
	"alcyxob/workout-tracker/internal/service"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	var configDir string
	root := &cobra.Command{
		Use:           "server",
		Short:         "Serve the workout tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configDir)
		},
	}
	root.Flags().StringVar(&configDir, "config", ".", "Directory containing config.yaml and .env")

	if err := root.Execute(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func run(configDir string) error {
	// --- Configuration ---
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("could not initialize logger: %w", err)
	}
	defer appLogger.Sync()
	appLogger.Infow("Starting Workout Tracker server", "storage_driver", cfg.Storage.Driver)

	// --- Storage ---
	ctx := context.Background()
	repo, err := driver.Open(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("could not open workout storage: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Close(closeCtx); err != nil {
			appLogger.Errorw("Failed to close workout storage", "error", err)
		}
	}()

	// --- Services & Routes ---
	appMetrics := metrics.New()
	workoutService := service.NewWorkoutService(repo, appLogger, appMetrics)

	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(cfg.Server, workoutService, appLogger, appMetrics)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Infow("Server listening", "address", cfg.Server.Address, "static_dir", cfg.Server.StaticDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	appLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info("Server exiting.")
	return nil
}
