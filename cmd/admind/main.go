// Package main is the entry point for the GameHub admin service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gamehub-admin/internal/auth"
	"gamehub-admin/internal/config"
	"gamehub-admin/internal/geoip"
	"gamehub-admin/internal/handler"
	"gamehub-admin/internal/pkg/db"
	"gamehub-admin/internal/repository"
	"gamehub-admin/internal/service"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log.Info().Msg("Configuration loaded successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	dbPool, err := db.NewPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbPool.Close()

	// Run database migrations
	if err := runMigrations(ctx, dbPool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize repositories
	eventRepo := repository.NewEventRepository(dbPool.Pool)
	statsRepo := repository.NewStatsRepository(dbPool.Pool)
	settingsRepo := repository.NewSettingsRepository(dbPool.Pool)
	auditRepo := repository.NewAuditRepository(dbPool.Pool)

	// Initialize GeoIP lookup (disabled when no database is configured)
	geo, err := geoip.Open(cfg.GeoIP.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open GeoIP database")
	}
	defer geo.Close()
	if cfg.GeoIP.DatabasePath == "" {
		log.Info().Msg("GeoIP lookups disabled (no database configured)")
	}

	// Initialize services
	dashboardService := service.NewDashboardService(
		eventRepo,
		statsRepo,
		cfg.Analytics.OrganicMode,
		cfg.Analytics.DefaultWindowDays,
	)
	if err := dashboardService.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load initial dashboard data")
	}

	settingsService := service.NewSettingsService(settingsRepo, auditRepo, cfg.Analytics.AuditLogLimit)
	if err := settingsService.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load hub settings")
	}

	ingestService := service.NewIngestService(eventRepo, statsRepo, geo)

	// Initialize auth
	provider := auth.NewStaticProvider(cfg.Admin.Email, cfg.Admin.PasswordHash)
	sessions := auth.NewSessions(cfg.Admin.SessionTTL)

	// Start the live snapshot watcher: each store change signal triggers a
	// whole-collection refetch.
	watcher := repository.NewWatcher(dbPool.Pool, cfg.Analytics.RefreshInterval)
	go func() {
		channels := []string{repository.ChannelEvents, repository.ChannelStats}
		err := watcher.Run(ctx, channels, func(channel string) {
			var refreshErr error
			switch channel {
			case repository.ChannelEvents:
				refreshErr = dashboardService.RefreshEvents(ctx)
			case repository.ChannelStats:
				refreshErr = dashboardService.RefreshStats(ctx)
			}
			if refreshErr != nil {
				log.Warn().Err(refreshErr).Str("channel", channel).Msg("Snapshot refresh failed")
			}
		})
		if err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Store watcher stopped")
		}
	}()

	// Initialize HTTP server
	apiHandler := handler.New(
		dashboardService,
		settingsService,
		ingestService,
		provider,
		sessions,
		cfg.Admin.Email,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      apiHandler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Admin service is starting...")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	cancel()
	log.Info().Msg("Admin service stopped gracefully")
}

// runMigrations executes database migrations.
func runMigrations(ctx context.Context, pool *db.Pool) error {
	log.Info().Msg("Running database migrations...")

	// Migration 1: Create click_events table
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS click_events (
			id UUID PRIMARY KEY,
			timestamp TIMESTAMPTZ,
			game_id INT,
			game_title TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			user_id TEXT NOT NULL DEFAULT 'unknown',
			country TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			os TEXT NOT NULL DEFAULT '',
			device_type TEXT NOT NULL DEFAULT '',
			browser TEXT NOT NULL DEFAULT '',
			device TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_click_events_time ON click_events(timestamp DESC NULLS FIRST);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 1: click_events table created")

	// Migration 2: Create game_stats table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_stats (
			game_id INT PRIMARY KEY,
			clicks BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 2: game_stats table created")

	// Migration 3: Create hub_settings document table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS hub_settings (
			id INT PRIMARY KEY CHECK (id = 1),
			document JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 3: hub_settings table created")

	// Migration 4: Create admin_audit_log table
	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS admin_audit_log (
			id BIGSERIAL PRIMARY KEY,
			timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			admin_email TEXT NOT NULL,
			action TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_audit_time ON admin_audit_log(timestamp DESC);
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 4: admin_audit_log table created")

	// Migration 5: Create change-notification triggers for the live watcher
	_, err = pool.Exec(ctx, `
		CREATE OR REPLACE FUNCTION notify_click_events() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('click_events_changed', '');
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql;

		DROP TRIGGER IF EXISTS click_events_notify ON click_events;
		CREATE TRIGGER click_events_notify
			AFTER INSERT ON click_events
			FOR EACH STATEMENT EXECUTE FUNCTION notify_click_events();

		CREATE OR REPLACE FUNCTION notify_game_stats() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('game_stats_changed', '');
			RETURN NULL;
		END;
		$$ LANGUAGE plpgsql;

		DROP TRIGGER IF EXISTS game_stats_notify ON game_stats;
		CREATE TRIGGER game_stats_notify
			AFTER INSERT OR UPDATE ON game_stats
			FOR EACH STATEMENT EXECUTE FUNCTION notify_game_stats();
	`)
	if err != nil {
		return err
	}
	log.Info().Msg("Migration 5: notification triggers created")

	log.Info().Msg("All migrations completed successfully")
	return nil
}
