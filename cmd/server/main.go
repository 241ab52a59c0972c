// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lumenfab/kpi-dashboard/internal/api"
	"github.com/lumenfab/kpi-dashboard/internal/cache"
	"github.com/lumenfab/kpi-dashboard/internal/config"
	"github.com/lumenfab/kpi-dashboard/internal/repository/postgres"
	"github.com/lumenfab/kpi-dashboard/internal/service"
	"github.com/lumenfab/kpi-dashboard/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tables, err := cache.NewTableStore(cfg.Cache)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to initialize table cache")
	}

	var snapshots *postgres.SnapshotRepository
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		snapshots = postgres.NewSnapshotRepository(db)
		if err := snapshots.Migrate(context.Background()); err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to migrate snapshot schema")
		}
	}

	reportService := service.NewReportService(tables, snapshots, cfg.Reports)

	router := api.NewRouter(reportService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
