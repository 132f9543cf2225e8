// Copyright (c) 2026 AlumHub. All rights reserved.
// Author: dev@alumhub.app

// Command api is the entry point for the AlumHub HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire identity adapters, the session manager, and all domain handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alumhub/alumhub/internal/api"
	"github.com/alumhub/alumhub/internal/community/donation"
	"github.com/alumhub/alumhub/internal/community/event"
	"github.com/alumhub/alumhub/internal/community/poll"
	"github.com/alumhub/alumhub/internal/community/post"
	"github.com/alumhub/alumhub/internal/community/stats"
	"github.com/alumhub/alumhub/internal/platform/config"
	"github.com/alumhub/alumhub/internal/platform/constants"
	"github.com/alumhub/alumhub/internal/platform/migration"
	pgstore "github.com/alumhub/alumhub/internal/platform/postgres"
	redisstore "github.com/alumhub/alumhub/internal/platform/redis"
	"github.com/alumhub/alumhub/internal/users/auth"
	"github.com/alumhub/alumhub/internal/users/identity"
	"github.com/alumhub/alumhub/internal/users/member"
	"github.com/alumhub/alumhub/internal/users/session"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("oauth2_enabled", cfg.OAuth2Enabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Identity & Sessions ────────────────────────────────────────────
	oidcAdapter := identity.NewOIDCAdapter(cfg.OIDCIssuerURL, cfg.OIDCClientID, cfg.AppDomains)

	// The alternate provider is wired only when both credentials are present;
	// its routes answer 503 otherwise.
	var oauth2Adapter *identity.OAuth2Adapter
	if cfg.OAuth2Enabled() {
		oauth2Adapter = identity.NewOAuth2Adapter(identity.OAuth2Options{
			ClientID:     cfg.OAuth2ClientID,
			ClientSecret: cfg.OAuth2ClientSecret,
			AuthURL:      cfg.OAuth2AuthURL,
			TokenURL:     cfg.OAuth2TokenURL,
			ProfileURL:   cfg.OAuth2ProfileURL,
		})
	}

	sessionRepository := session.NewRedisSessionRepository(rdb)
	sessionManager := session.NewManager(sessionRepository, oidcAdapter, cfg.SessionSecret)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckSessions: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	memberService := member.NewService(member.NewPostgresRepository(pool), log)
	authService := auth.NewService(oidcAdapter, oauth2Adapter, sessionManager, memberService, log)

	postService := post.NewService(post.NewPostgresRepository(pool), log)
	eventService := event.NewService(event.NewPostgresRepository(pool), log)
	donationService := donation.NewService(donation.NewPostgresRepository(pool), memberService, eventService, log)
	pollService := poll.NewService(poll.NewPostgresRepository(pool), log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, !cfg.IsDevelopment()),
		Member:    member.NewHandler(memberService),
		Post:      post.NewHandler(postService),
		Event:     event.NewHandler(eventService),
		Donation:  donation.NewHandler(donationService),
		Poll:      poll.NewHandler(pollService),
		Stats:     stats.NewHandler(stats.NewPostgresRepository(pool)),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, sessionManager, memberService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
