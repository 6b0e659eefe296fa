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

package dolphincfg

import (
	"path/filepath"
	"testing"

	testhelpers "github.com/SlippiLabs/dolman/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
)

const seededSettings = `[General]
ISOPaths = 1
ISOPath0 = /games/old
DebugModeEnabled = False

[Core]
EnableCheats = False
SlippiForceNetplayPort = True

[Interface]
ConfirmStop = True
`

func parseSettings(t *testing.T, fsh *testhelpers.FSHelper, path string) *ini.File {
	t.Helper()
	data, err := fsh.ReadFile(path)
	require.NoError(t, err)
	cfg, err := ini.Load(data)
	require.NoError(t, err)
	return cfg
}

func TestSettingsPath(t *testing.T) {
	t.Parallel()
	want := filepath.Join("/user", "netplay", "Config", "Dolphin.ini")
	assert.Equal(t, want, SettingsPath(filepath.Join("/user", "netplay")))
}

func TestAddGamePathCreatesMissingFile(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	editor := NewEditor(fsh.Fs)
	path := SettingsPath("/user/netplay")

	require.NoError(t, editor.AddGamePath(path, "/games/melee"))
	require.True(t, fsh.FileExists(path))

	cfg := parseSettings(t, fsh, path)
	assert.Equal(t, "/games/melee", cfg.Section("General").Key("ISOPath0").String())
	assert.Equal(t, "1", cfg.Section("General").Key("ISOPaths").String())
}

func TestAddGamePathAppendsAndDeduplicates(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	editor := NewEditor(fsh.Fs)
	path := SettingsPath("/user/netplay")

	require.NoError(t, editor.AddGamePath(path, "/games/a"))
	require.NoError(t, editor.AddGamePath(path, "/games/b"))
	// Adding a folder already on the list is a no-op.
	require.NoError(t, editor.AddGamePath(path, "/games/a"))

	paths, err := editor.GamePaths(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/games/a", "/games/b"}, paths)

	cfg := parseSettings(t, fsh, path)
	assert.Equal(t, "2", cfg.Section("General").Key("ISOPaths").String())
}

func TestAddGamePathPreservesUnrelatedKeys(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	require.NoError(t, fsh.CreateUserFolder("/user/netplay", seededSettings))

	editor := NewEditor(fsh.Fs)
	path := SettingsPath("/user/netplay")
	require.NoError(t, editor.AddGamePath(path, "/games/new"))

	// Everything the emulator or the user put there survives the edit.
	cfg := parseSettings(t, fsh, path)
	assert.Equal(t, "False", cfg.Section("General").Key("DebugModeEnabled").String())
	assert.Equal(t, "False", cfg.Section("Core").Key("EnableCheats").String())
	assert.Equal(t, "True", cfg.Section("Core").Key("SlippiForceNetplayPort").String())
	assert.Equal(t, "True", cfg.Section("Interface").Key("ConfirmStop").String())

	assert.Equal(t, "/games/old", cfg.Section("General").Key("ISOPath0").String())
	assert.Equal(t, "/games/new", cfg.Section("General").Key("ISOPath1").String())
	assert.Equal(t, "2", cfg.Section("General").Key("ISOPaths").String())
}

func TestUpdateSettingsWritesManagedKeys(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	editor := NewEditor(fsh.Fs)
	path := SettingsPath("/user/netplay")

	replayDir := "/replays"
	monthly := false
	require.NoError(t, editor.UpdateSettings(path, Settings{
		ReplayDir:         &replayDir,
		MonthlySubfolders: &monthly,
	}))

	cfg := parseSettings(t, fsh, path)
	assert.Equal(t, "/replays", cfg.Section("Core").Key("SlippiReplayDir").String())
	assert.Equal(t, "False", cfg.Section("Core").Key("SlippiReplayMonthFolders").String())
}

func TestUpdateSettingsLeavesNilFieldsUntouched(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	require.NoError(t, fsh.CreateUserFolder("/user/netplay", `[Core]
SlippiReplayDir = /old/replays
SlippiReplayMonthFolders = True
`))

	editor := NewEditor(fsh.Fs)
	path := SettingsPath("/user/netplay")

	replayDir := "/new/replays"
	require.NoError(t, editor.UpdateSettings(path, Settings{ReplayDir: &replayDir}))

	cfg := parseSettings(t, fsh, path)
	assert.Equal(t, "/new/replays", cfg.Section("Core").Key("SlippiReplayDir").String())
	assert.Equal(t, "True", cfg.Section("Core").Key("SlippiReplayMonthFolders").String(),
		"field not in the update keeps its value")
}

func TestUpdateSettingsAllNilIsNoop(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	editor := NewEditor(fsh.Fs)
	path := SettingsPath("/user/netplay")

	require.NoError(t, editor.UpdateSettings(path, Settings{}))
	assert.False(t, fsh.FileExists(path), "no-op update must not create the file")
}

func TestUpdateSettingsPreservesUserEdits(t *testing.T) {
	t.Parallel()

	fsh := testhelpers.NewMemoryFS()
	require.NoError(t, fsh.CreateUserFolder("/user/netplay", seededSettings))

	editor := NewEditor(fsh.Fs)
	path := SettingsPath("/user/netplay")

	replayDir := "/replays"
	require.NoError(t, editor.UpdateSettings(path, Settings{ReplayDir: &replayDir}))

	cfg := parseSettings(t, fsh, path)
	assert.Equal(t, "True", cfg.Section("Core").Key("SlippiForceNetplayPort").String())
	assert.Equal(t, "1", cfg.Section("General").Key("ISOPaths").String())
	assert.Equal(t, "/replays", cfg.Section("Core").Key("SlippiReplayDir").String())
}

func TestGamePathsOnMissingFile(t *testing.T) {
	t.Parallel()

	editor := NewEditor(testhelpers.NewMemoryFS().Fs)
	paths, err := editor.GamePaths(SettingsPath("/user/netplay"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}
