// Dolman
// Copyright (c) 2026 The Dolman Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dolman.
//
// Dolman is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dolman is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dolman.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests that construct an Instance through NewConfig pin DOLMAN_CFG so a
// developer's environment cannot redirect them, which also means they must
// not run in parallel.

func TestNewConfigCreatesDefaults(t *testing.T) {
	t.Setenv(CfgEnv, "")
	dir := t.TempDir()

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, CfgFile), cfg.Path())
	require.FileExists(t, cfg.Path())

	assert.Equal(t, DefaultAPIPort, cfg.APIPort())
	assert.Equal(t, defaultNetplayFeed, cfg.NetplayFeed())
	assert.Equal(t, defaultPlaybackFeed, cfg.PlaybackFeed())
	assert.True(t, cfg.MonthlySubfolders())
	assert.True(t, cfg.ReplayWatch())
	assert.False(t, cfg.DebugLogging())
	assert.Empty(t, cfg.ISOPath())
	assert.Empty(t, cfg.InstallDir())

	data, err := os.ReadFile(cfg.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_schema = 1")
}

func TestConfigRoundTrip(t *testing.T) {
	t.Setenv(CfgEnv, "")
	dir := t.TempDir()

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	cfg.SetInstallDir("/opt/dolman")
	cfg.SetISOPath("/isos/melee.iso")
	cfg.SetReplayDir("/replays")
	cfg.SetMonthlySubfolders(false)
	cfg.SetDebugLogging(true)
	require.NoError(t, cfg.Save())

	reopened, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, "/opt/dolman", reopened.InstallDir())
	assert.Equal(t, "/isos/melee.iso", reopened.ISOPath())
	assert.Equal(t, "/replays", reopened.ReplayDir())
	// monthly_subfolders has no omitempty, so the explicit false survives
	// the reload even though the default is true.
	assert.False(t, reopened.MonthlySubfolders())
	assert.True(t, reopened.DebugLogging())
}

func TestPartialFileOverlaysDefaults(t *testing.T) {
	t.Setenv(CfgEnv, "")
	dir := t.TempDir()

	// No config_schema key either: the defaults backfill it.
	partial := `[dolphin]
iso_path = "/isos/custom.iso"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(partial), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, "/isos/custom.iso", cfg.ISOPath())
	assert.Equal(t, defaultNetplayFeed, cfg.NetplayFeed())
	assert.Equal(t, DefaultAPIPort, cfg.APIPort())
	assert.True(t, cfg.MonthlySubfolders())
	assert.True(t, cfg.ReplayWatch())
}

func TestSchemaVersionMismatch(t *testing.T) {
	t.Setenv(CfgEnv, "")
	dir := t.TempDir()

	stale := `config_schema = 99
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(stale), 0o600))

	_, err := NewConfig(dir, BaseDefaults)
	require.Error(t, err)
	assert.ErrorContains(t, err, "schema version mismatch")
}

func TestZeroAPIPortFallsBackToDefault(t *testing.T) {
	t.Setenv(CfgEnv, "")
	dir := t.TempDir()

	zeroed := `config_schema = 1

[service]
api_port = 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(zeroed), 0o600))

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIPort, cfg.APIPort())
}

func TestEnvOverridesConfigPath(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(CfgEnv, custom)

	ignored := t.TempDir()
	cfg, err := NewConfig(ignored, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, custom, cfg.Path())
	assert.FileExists(t, custom)
	assert.NoFileExists(t, filepath.Join(ignored, CfgFile))
}

func TestUnsetPathRejected(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	require.ErrorContains(t, cfg.Save(), "config path not set")
	require.ErrorContains(t, cfg.Load(), "config path not set")
}
