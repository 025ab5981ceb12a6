// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyrail/keyrail/pkg/errutil"
)

// execute runs the root command with the given args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Ensure ambient configuration does not leak into command tests.
	t.Setenv("DATABASE_URL", "")

	var buf bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	assert.True(t, names["migrate"], "missing migrate subcommand")
	assert.True(t, names["apikey"], "missing apikey subcommand")
	assert.True(t, names["status"], "missing status subcommand")
}

func TestNewRootCmd_GlobalFlags(t *testing.T) {
	cmd := NewRootCmd()

	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-format"))
}

func TestRootCmd_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "keyrail")
	assert.Contains(t, out, "migrate")
}

func TestMigrateCmd_RequiresDatabaseURL(t *testing.T) {
	_, err := execute(t, "migrate")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
	assert.Contains(t, err.Error(), "database URL is required")
}

func TestStatusCmd_RequiresDatabaseURL(t *testing.T) {
	_, err := execute(t, "status")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
}

func TestAPIKeyCreateCmd_RequiresDatabaseURL(t *testing.T) {
	_, err := execute(t, "apikey", "create")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_INVALID")
}

func TestAPIKeyDisableCmd_InvalidID(t *testing.T) {
	_, err := execute(t, "apikey", "disable", "not-a-ulid")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "APIKEY_INVALID_ID")
}

func TestAPIKeyDisableCmd_RequiresArg(t *testing.T) {
	_, err := execute(t, "apikey", "disable")
	require.Error(t, err)
}

func TestMigrateCmd_RejectsMissingConfigFile(t *testing.T) {
	_, err := execute(t, "migrate", "--config", "/nonexistent/config.yaml")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "CONFIG_FILE_FAILED")
}
