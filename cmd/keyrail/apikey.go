// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package main

import (
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/keyrail/keyrail/internal/auth"
	"github.com/keyrail/keyrail/internal/auth/postgres"
	"github.com/keyrail/keyrail/internal/store"
)

// NewAPIKeyCmd creates the apikey subcommand group. API keys are created
// administratively; there is no self-service surface for them.
func NewAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage service-level API keys",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "create",
			Short: "Create a new API key",
			Long: `Create a new active API key. The id:secret pair is printed once;
only the secret's digest is stored and it cannot be recovered later.`,
			RunE: runAPIKeyCreate,
		},
		&cobra.Command{
			Use:   "disable <id>",
			Short: "Disable an API key",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return setAPIKeyActive(cmd, args[0], false) },
		},
		&cobra.Command{
			Use:   "enable <id>",
			Short: "Re-enable a disabled API key",
			Args:  cobra.ExactArgs(1),
			RunE:  func(cmd *cobra.Command, args []string) error { return setAPIKeyActive(cmd, args[0], true) },
		},
	)

	return cmd
}

// apiKeyRepo builds the repository for administrative key operations.
func apiKeyRepo(cmd *cobra.Command) (*postgres.APIKeyRepository, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.URL == "" {
		return nil, nil, oops.Code("CONFIG_INVALID").Errorf("database URL is required (set DATABASE_URL or database.url)")
	}

	pool, err := store.NewPool(cmd.Context(), cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}

	return postgres.NewAPIKeyRepository(pool), pool.Close, nil
}

func runAPIKeyCreate(cmd *cobra.Command, _ []string) error {
	repo, closePool, err := apiKeyRepo(cmd)
	if err != nil {
		return err
	}
	defer closePool()

	secret, digest, err := auth.GenerateSecret()
	if err != nil {
		return err
	}

	key, err := auth.NewAPIKey(digest)
	if err != nil {
		return err
	}

	if err := repo.Create(cmd.Context(), key); err != nil {
		return err
	}

	cmd.Println("API key created. Store the pair now; the secret is not recoverable.")
	cmd.Printf("%s:%s\n", key.ID.String(), secret)
	return nil
}

func setAPIKeyActive(cmd *cobra.Command, idStr string, active bool) error {
	id, err := ulid.Parse(idStr)
	if err != nil {
		return oops.Code("APIKEY_INVALID_ID").With("id", idStr).Wrap(err)
	}

	repo, closePool, err := apiKeyRepo(cmd)
	if err != nil {
		return err
	}
	defer closePool()

	if err := repo.SetActive(cmd.Context(), id, active); err != nil {
		return err
	}

	if active {
		cmd.Printf("API key %s enabled\n", id.String())
	} else {
		cmd.Printf("API key %s disabled\n", id.String())
	}
	return nil
}
