package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"task-api/configs"
	v1 "task-api/internal/api/v1"
	"task-api/internal/config"
	"task-api/internal/repository"
	"task-api/pkg/database"
	"task-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configs.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		// Inisialisasi logger
		log, err := logger.New(cfg.LogDir)
		if err != nil {
			return err
		}
		defer log.Sync()
		log.System.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := database.ConnectDB(ctx, cfg)
		if err != nil {
			log.Error.Error("Database connection failed", zap.Error(err))
			return err
		}
		defer db.Close()
		log.System.Info("Database Connected")

		// Buat tabel jika belum ada
		if err := repository.CreateTableIfNotExists(ctx, db); err != nil {
			log.Error.Error("Schema setup failed", zap.Error(err))
			return err
		}

		rdb, err := database.ConnectRedis(ctx, cfg)
		if err != nil {
			log.Error.Error("Redis connection error", zap.Error(err))
			return err
		}
		if rdb != nil {
			defer rdb.Close()
			log.System.Info("Redis Connected, task cache enabled")
		}

		app := v1.NewApp(config.NewDependencies(cfg, db, rdb, log))

		errCh := make(chan error, 1)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.AppPort)
			log.System.Info("Application ready", zap.String("addr", addr))
			errCh <- app.Listen(addr)
		}()

		select {
		case err := <-errCh:
			log.Error.Error("Application failed to start", zap.Error(err))
			return err
		case <-ctx.Done():
		}

		log.System.Info("Shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Error.Error("Shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
