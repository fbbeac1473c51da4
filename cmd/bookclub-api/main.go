package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/edvin/bookclub/internal/api"
	"github.com/edvin/bookclub/internal/config"
	"github.com/edvin/bookclub/internal/core"
	"github.com/edvin/bookclub/internal/db"
	"github.com/edvin/bookclub/internal/logging"
	"github.com/edvin/bookclub/internal/oidcauth"
)

func main() {
	migrateFlag := flag.Bool("migrate", false, "Run database migrations before starting")
	migrateDirFlag := flag.String("migrate-dir", "migrations", "Migration files directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg)

	if *migrateFlag {
		logger.Info().Str("dir", *migrateDirFlag).Msg("running database migrations")
		if err := db.RunMigrations(cfg.DatabaseURL, *migrateDirFlag); err != nil {
			logger.Fatal().Err(err).Msg("migration failed")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	verifier, err := oidcauth.NewGoogleVerifier(ctx,
		cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL+"/auth/google/callback")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize identity provider")
	}

	srv := api.NewServer(logger, pool, verifier, cfg)

	go runPurgeLoop(ctx, logger, pool, cfg)

	httpServer := &http.Server{
		Addr:         cfg.HTTPListenAddr,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPListenAddr).Msg("starting book club API server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
}

// runPurgeLoop sweeps expired sessions and pending login states. Both are
// rejected at read time regardless; the sweep keeps the tables small.
func runPurgeLoop(ctx context.Context, logger zerolog.Logger, pool core.DB, cfg *config.Config) {
	states := core.NewAuthStateService(pool, cfg.StateTTL, cfg.ReturnURLAllowList)
	sessions := core.NewSessionService(pool, cfg.SessionHashKey, cfg.SessionTTL)

	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := states.PurgeExpired(ctx); err != nil {
				logger.Warn().Err(err).Msg("purge auth states failed")
			} else if n > 0 {
				logger.Info().Int64("count", n).Msg("purged expired auth states")
			}
			if n, err := sessions.PurgeExpired(ctx); err != nil {
				logger.Warn().Err(err).Msg("purge sessions failed")
			} else if n > 0 {
				logger.Info().Int64("count", n).Msg("purged expired sessions")
			}
		}
	}
}
