// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate for applying and reverting the
// SQL files under the configured migrations directory.
//
// The server applies pending migrations at startup; the "migrate" command
// exposes the same runner for manual up/down operations.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Runner applies migrations from one directory to one database.
type Runner struct {
	databaseURL string
	sourceURL   string
	logger      *slog.Logger
}

// NewRunner builds a [Runner]. dsn may use the postgres://, postgresql:// or pgx5:// scheme.
func NewRunner(dsn, migrationsPath string, logger *slog.Logger) *Runner {
	return &Runner{
		databaseURL: ToPgx5DSN(dsn),
		sourceURL:   "file://" + migrationsPath,
		logger:      logger,
	}
}

// Up applies all pending migrations. An up-to-date database is not an error.
func (runner *Runner) Up() error {
	return runner.run("up", func(migrator *migrate.Migrate) error {
		return migrator.Up()
	})
}

// Down reverts the given number of migrations (at least one).
func (runner *Runner) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("migration: steps must be positive, got %d", steps)
	}
	return runner.run("down", func(migrator *migrate.Migrate) error {
		return migrator.Steps(-steps)
	})
}

// Version reports the current schema version and whether it is dirty.
func (runner *Runner) Version() (version uint, dirty bool, err error) {
	err = runner.withMigrator(func(migrator *migrate.Migrate) error {
		version, dirty, err = migrator.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})
	return version, dirty, err
}

func (runner *Runner) run(direction string, apply func(*migrate.Migrate) error) error {
	return runner.withMigrator(func(migrator *migrate.Migrate) error {
		currentVersion, isDirty, err := migrator.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("migration: failed to get current version: %w", err)
		}

		if isDirty {
			return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
		}

		runner.logger.Info("migration_started",
			slog.String("direction", direction),
			slog.Int("current_version", int(currentVersion)),
		)

		if err := apply(migrator); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				runner.logger.Info("migration_already_up_to_date")
				return nil
			}
			return fmt.Errorf("migration: %s failed: %w", direction, err)
		}

		newVersion, _, _ := migrator.Version()
		runner.logger.Info("migration_successful",
			slog.String("direction", direction),
			slog.Int("from_version", int(currentVersion)),
			slog.Int("to_version", int(newVersion)),
		)

		return nil
	})
}

func (runner *Runner) withMigrator(fn func(*migrate.Migrate) error) error {
	migrator, err := migrate.New(runner.sourceURL, runner.databaseURL)
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			runner.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			runner.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: runner.logger}

	return fn(migrator)
}

// ToPgx5DSN rewrites a postgres URL to the pgx5:// scheme golang-migrate expects.
// Key/value DSNs and unknown schemes are returned unchanged.
func ToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return l.verbose
}
