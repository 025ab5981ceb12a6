// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/keyrail/keyrail/internal/config"
	"github.com/keyrail/keyrail/internal/logging"
)

// Global flags available to all subcommands.
var (
	configFile string
	logFormat  string
)

// NewRootCmd creates the root command for the Keyrail CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keyrail",
		Short: "Keyrail - token-based API authentication",
		Long: `Keyrail issues and verifies service-level API keys and per-user
access tokens, and manages the password-reset and confirmation flows
for the applications that embed it.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.SetDefault("keyrail", cmd.Root().Version, logFormat)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (json or text)")

	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewAPIKeyCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}

// loadConfig loads configuration honoring the global --config flag and
// the command's own flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(configFile, cmd.Flags())
}
