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

package dolphin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommFileUniquePaths(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		path, err := NewCommFile(UsePlayback)
		require.NoError(t, err)
		require.False(t, seen[path], "comm file path repeated: %s", path)
		seen[path] = true
		require.FileExists(t, path)
	}
}

func TestNewCommFileNameEmbedsUseType(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	path, err := NewCommFile(UseSpectate)
	require.NoError(t, err)

	name := filepath.Base(path)
	assert.True(t, strings.HasPrefix(name, "comm-spectate-"), "got %s", name)
	assert.True(t, strings.HasSuffix(name, ".json"), "got %s", name)
	assert.Equal(t, CommDirName, filepath.Base(filepath.Dir(path)))
}

func TestWriteCommFileOverwrites(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	path, err := NewCommFile(UsePlayback)
	require.NoError(t, err)

	long := &CommPayload{
		Mode:      CommModeQueue,
		CommandID: "abc123",
		Queue:     []QueueItem{{Path: "/replays/one.slp"}, {Path: "/replays/two.slp"}},
	}
	require.NoError(t, WriteCommFile(path, long))

	short := &CommPayload{Replay: "/replays/three.slp"}
	require.NoError(t, WriteCommFile(path, short))

	// The second write fully replaces the first, with no trailing bytes
	// from the longer payload left behind.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want, err := json.Marshal(short)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(data))
}

func TestWriteCommFileAfterRemoveFails(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	path, err := NewCommFile(UsePlayback)
	require.NoError(t, err)
	require.NoError(t, RemoveCommFile(path))

	err = WriteCommFile(path, &CommPayload{Replay: "a.slp"})
	require.Error(t, err, "write must not resurrect a removed comm file")
	assert.NoFileExists(t, path)
}

func TestRemoveCommFileIdempotent(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	path, err := NewCommFile(UsePlayback)
	require.NoError(t, err)

	require.NoError(t, RemoveCommFile(path))
	require.NoError(t, RemoveCommFile(path), "second remove is a no-op")
}

func TestCommPayloadOptionalFields(t *testing.T) {
	t.Parallel()

	realTime := false
	start := 0
	data, err := json.Marshal(&CommPayload{
		Replay:         "/replays/game.slp",
		IsRealTimeMode: &realTime,
		StartFrame:     &start,
	})
	require.NoError(t, err)

	// Caller-set false and zero survive the round trip; unset fields are
	// omitted entirely.
	assert.Contains(t, string(data), `"isRealTimeMode":false`)
	assert.Contains(t, string(data), `"startFrame":0`)
	assert.NotContains(t, string(data), "endFrame")
	assert.NotContains(t, string(data), "mode")
}
