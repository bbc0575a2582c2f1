// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/eventos/internal/api"
	"github.com/taibuivan/eventos/internal/core/attendance"
	"github.com/taibuivan/eventos/internal/core/event"
	"github.com/taibuivan/eventos/internal/core/eventtype"
	"github.com/taibuivan/eventos/internal/core/person"
	"github.com/taibuivan/eventos/internal/platform/constants"
	"github.com/taibuivan/eventos/internal/platform/migration"
	pgstore "github.com/taibuivan/eventos/internal/platform/postgres"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/internal/users/account"
	"github.com/taibuivan/eventos/internal/users/auth"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// # Startup Sequence
//
//  1. Initialize structured logger and load configuration.
//  2. Build the token service (fails fast on a weak key).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Wire HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
func runServe(cmd *cobra.Command) error {
	// ── 1. Logger & Configuration ─────────────────────────────────────────
	cfg, log := bootstrap()
	log.Info("service_initializing")

	// ── 2. Token Service ──────────────────────────────────────────────────
	// Checked before touching the database so a bad key never listens.
	tokenService, err := sec.NewTokenService(cfg.JWTKey, cfg.JWTIssuer, cfg.JWTAudience)
	must(log, err, "initialize token service")

	startupCtx, startupCancel := context.WithTimeout(cmd.Context(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log).Up(), "run migrations")

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}, log)

	userRepository := auth.NewUserRepository(pool)
	authService := auth.NewService(userRepository, tokenService, cfg.PhoneRegion, log)

	accountService := account.NewService(account.NewAccountRepository(pool), cfg.PhoneRegion, log)
	eventTypeService := eventtype.NewService(eventtype.NewPostgresRepository(pool), log)
	eventService := event.NewService(event.NewPostgresRepository(pool), log)
	personService := person.NewService(person.NewPostgresRepository(pool), cfg.PhoneRegion, log)
	attendanceService := attendance.NewService(attendance.NewPostgresRepository(pool), log)

	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService),
		Account:    account.NewHandler(accountService),
		EventType:  eventtype.NewHandler(eventTypeService),
		Event:      event.NewHandler(eventService),
		Person:     person.NewHandler(personService),
		Attendance: attendance.NewHandler(attendanceService),
	}

	server := api.NewServer(cfg, log, tokenService, handlers)

	// ── 6. Graceful Shutdown ──────────────────────────────────────────────
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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
		return err
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return err
	}

	log.Info("server_stopped_cleanly")
	return nil
}
