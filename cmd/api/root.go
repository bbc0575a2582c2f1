// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/eventos/internal/platform/constants"
)

// rootCmd runs the server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:          "eventos",
	Short:        "Event management API",
	Version:      constants.AppVersion,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}
