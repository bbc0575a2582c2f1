// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/eventos/internal/platform/migration"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newMigrationRunner().Up()
	},
}

var migrateDownSteps int

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateDownSteps < 1 {
			return fmt.Errorf("--steps must be at least 1, got %d", migrateDownSteps)
		}
		return newMigrationRunner().Down(migrateDownSteps)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		version, dirty, err := newMigrationRunner().Version()
		if err != nil {
			return err
		}
		cmd.Printf("version=%d dirty=%t\n", version, dirty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&migrateDownSteps, "steps", 1, "number of migrations to roll back")
}

func newMigrationRunner() *migration.Runner {
	cfg, log := bootstrap()
	return migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log)
}
