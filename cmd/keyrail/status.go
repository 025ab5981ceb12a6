// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/keyrail/keyrail/internal/store"
)

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database connectivity and migration status",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return oops.Code("CONFIG_INVALID").Errorf("database URL is required (set DATABASE_URL or database.url)")
	}

	pool, err := store.NewPool(cmd.Context(), cfg.Database.URL)
	if err != nil {
		return err
	}
	pool.Close()
	cmd.Println("Database: reachable")

	migrator, err := store.NewMigrator(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer migrator.Close() //nolint:errcheck // Close error is not actionable after reading version

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}

	if version == 0 {
		cmd.Println("Migrations: none applied")
	} else if dirty {
		cmd.Printf("Migrations: version %d (dirty - manual intervention required)\n", version)
	} else {
		cmd.Printf("Migrations: version %d\n", version)
	}
	return nil
}
