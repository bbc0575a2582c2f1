// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Eventos HTTP API.
//
// # Commands
//
//	eventos serve          Run migrations and start the HTTP server (default)
//	eventos migrate up     Apply all pending migrations
//	eventos migrate down   Roll back migrations (one step unless --steps is given)
//	eventos migrate version
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"log/slog"
	"os"

	"github.com/taibuivan/eventos/internal/platform/config"
	"github.com/taibuivan/eventos/internal/platform/constants"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the JSON logger every command writes to.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	return rawLog.With(slog.String("app", constants.AppName))
}

// bootstrap initializes the logger and loads configuration.
//
// The logger is created first so that configuration errors are structured JSON.
func bootstrap() (*config.Config, *slog.Logger) {
	log := newLogger(false)
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(true)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	return cfg, log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
