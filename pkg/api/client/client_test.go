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

package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/SlippiLabs/dolman/pkg/api"
	"github.com/SlippiLabs/dolman/pkg/api/client"
	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/SlippiLabs/dolman/pkg/database/historydb"
	"github.com/SlippiLabs/dolman/pkg/dolphincfg"
	"github.com/SlippiLabs/dolman/pkg/installer"
	"github.com/SlippiLabs/dolman/pkg/instances"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/SlippiLabs/dolman/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

// startTestServer runs the full API stack on a free port and returns the
// config pointing at it.
func startTestServer(t *testing.T) *config.Instance {
	t.Helper()
	t.Setenv(config.CfgEnv, "")

	port := freePort(t)
	dir := t.TempDir()
	cfgToml := fmt.Sprintf("config_schema = 1\n\n[service]\napi_port = %d\n", port)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.CfgFile), []byte(cfgToml), 0o600))

	cfg, err := config.NewConfig(dir, config.BaseDefaults)
	require.NoError(t, err)

	pl := &mocks.MockPlatform{}
	pl.On("ID").Return("linux")

	base := t.TempDir()
	starter := &mocks.MockCommandStarter{}
	registry, ns := instances.NewRegistry(instances.NewLauncher(pl, starter, base))

	mgr := installer.NewManager(
		pl, nil, nil, nil, dolphincfg.NewEditor(afero.NewMemMapFs()), nil, base)

	history, err := historydb.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = history.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = api.Start(ctx, pl, cfg, registry, mgr, history, ns)
	}()

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	require.Eventually(t, func() bool {
		conn, dialErr := net.DialTimeout("tcp", addr, 100*time.Millisecond)
		if dialErr != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 5*time.Second, 50*time.Millisecond, "API server did not come up")

	return cfg
}

func TestLocalClientAgainstRunningService(t *testing.T) {
	cfg := startTestServer(t)
	ctx := context.Background()

	t.Run("version round trip", func(t *testing.T) {
		resp, err := client.LocalClient(ctx, cfg, models.MethodVersion, "")
		require.NoError(t, err)

		var version models.VersionResponse
		require.NoError(t, json.Unmarshal([]byte(resp), &version))
		assert.Equal(t, config.AppVersion, version.Version)
		assert.Equal(t, "linux", version.Platform)
	})

	t.Run("instances starts empty", func(t *testing.T) {
		resp, err := client.LocalClient(ctx, cfg, models.MethodInstances, "")
		require.NoError(t, err)
		assert.JSONEq(t, `{"instances":[]}`, resp)
	})

	t.Run("settings reflect defaults", func(t *testing.T) {
		resp, err := client.LocalClient(ctx, cfg, models.MethodSettings, "")
		require.NoError(t, err)

		var settings models.SettingsResponse
		require.NoError(t, json.Unmarshal([]byte(resp), &settings))
		assert.Equal(t, platforms.DefaultInstallBase(), settings.InstallDir)
		assert.True(t, settings.MonthlySubfolders)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := client.LocalClient(ctx, cfg, "instances.reboot", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Method not found")
	})

	t.Run("launch errors reach the caller", func(t *testing.T) {
		_, err := client.LocalClient(ctx, cfg, models.MethodInstancesLaunch, `{"useType":"config"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must define a launch variant for configuration")
	})

	t.Run("malformed params rejected client side", func(t *testing.T) {
		_, err := client.LocalClient(ctx, cfg, models.MethodVersion, `{"broken`)
		require.ErrorIs(t, err, client.ErrInvalidParams)
	})
}
