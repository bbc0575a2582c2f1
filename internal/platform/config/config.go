// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. In development an optional '.env' file is read first through
'joho/godotenv'; variables already present in the environment always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components via constructors.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MinSigningKeyBytes is the shortest HS256 key the server accepts.
const MinSigningKeyBytes = 32

// # Configuration Schema

// Config holds all runtime configuration for the Eventos API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Token signing (HS256). The key is shared by issuer and validator.
	JWTKey      string `env:"JWT_KEY,required"`
	JWTIssuer   string `env:"JWT_ISSUER"   envDefault:"eventos-api"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"eventos-client"`

	// Cross-Origin Resource Sharing, comma separated. Ignored in development.
	CORSOrigins string `env:"CORS_ORIGINS"`

	// PhoneRegion is the ISO 3166 region used to parse phone numbers without a country prefix.
	PhoneRegion string `env:"PHONE_REGION" envDefault:"EC"`

	// StaticDir, when set, is served at "/" for the browser front-end.
	StaticDir string `env:"STATIC_DIR"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Pick up a local .env file before parsing, development only
	if isDevelopmentEnv() {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to read .env file: %w", err)
		}
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks constraints the struct tags cannot express.
func (c *Config) Validate() error {
	if len(c.JWTKey) < MinSigningKeyBytes {
		return fmt.Errorf("config: JWT_KEY must be at least %d bytes", MinSigningKeyBytes)
	}
	if strings.TrimSpace(c.JWTIssuer) == "" || strings.TrimSpace(c.JWTAudience) == "" {
		return errors.New("config: JWT_ISSUER and JWT_AUDIENCE must not be empty")
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the configured CORS origins.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// isDevelopmentEnv mirrors the ENVIRONMENT default before the struct is parsed.
func isDevelopmentEnv() bool {
	value, ok := os.LookupEnv("ENVIRONMENT")
	return !ok || value == "development"
}
