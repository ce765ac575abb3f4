package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/2or5/football-manager/internal/api"
	"github.com/2or5/football-manager/internal/api/handlers"
	"github.com/2or5/football-manager/internal/database"
	"github.com/2or5/football-manager/internal/repository"
	"github.com/2or5/football-manager/internal/service"
	"github.com/2or5/football-manager/pkg/config"
	"github.com/2or5/football-manager/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	appLogger.Info("starting football manager service",
		"version", "1.0.0",
		"port", cfg.Server.Port,
	)

	if err := database.Migrate(&cfg.Database, appLogger); err != nil {
		appLogger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := database.New(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Инициализация репозиториев
	teamRepo := repository.NewTeamRepository(db.Pool, appLogger)
	playerRepo := repository.NewPlayerRepository(db.Pool, appLogger)
	transferRepo := repository.NewTransferRepository(db.Pool, appLogger)
	statsRepo := repository.NewStatsRepository(db.Pool, appLogger)

	// Инициализация сервисов
	teamService := service.NewTeamService(teamRepo, appLogger)
	playerService := service.NewPlayerService(playerRepo, teamRepo, appLogger)
	transferService := service.NewTransferService(transferRepo, appLogger)
	statsService := service.NewStatsService(statsRepo, appLogger)

	// Инициализация хендлеров
	handler := handlers.NewHandler(teamService, playerService, transferService, statsService, appLogger)

	// Инициализация роутера и мидлваре
	router := api.NewRouter(handler, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	appLogger.Info("server stopped gracefully")
}
