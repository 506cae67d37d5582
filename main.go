package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/issue-tracker-be/internal/api"
	"github.com/isdelr/issue-tracker-be/internal/auth"
	"github.com/isdelr/issue-tracker-be/internal/config"
	"github.com/isdelr/issue-tracker-be/internal/database"
	"github.com/isdelr/issue-tracker-be/internal/logger"
	"github.com/isdelr/issue-tracker-be/internal/monitoring"
	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/isdelr/issue-tracker-be/internal/web"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	seeded, err := database.SeedAdmin(db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default admin account")
	}
	if seeded {
		log.Info().Msg("Default admin account created: admin / admin")
	}

	// Set up sessions and views
	sessions := auth.NewSessionManager(cfg.SessionLifetime)
	render, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load page templates")
	}

	// Set up services
	userService := services.NewUserService(db)
	issueService := services.NewIssueService(db)
	auditService := services.NewAuditService(db)
	exportService := services.NewExportService(db)

	// Set up and run the background audit retention sweeper, if enabled
	var sweeper *monitoring.RetentionSweeper
	if cfg.AuditRetentionDays > 0 {
		sweeper, err = monitoring.NewRetentionSweeper(auditService, cfg.AuditSweepSchedule, cfg.AuditRetentionDays)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure audit retention sweeper")
		}
		go sweeper.Run()
	}

	// Set up router
	router := api.NewRouter(sessions, render, userService, issueService, auditService, exportService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if sweeper != nil {
		sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
