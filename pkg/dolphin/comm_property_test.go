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
	"testing"

	"pgregory.net/rapid"
)

// ============================================================================
// Comm File Property Tests
// ============================================================================

// TestPropertyCommFileLastWriteWins verifies that after any sequence of
// payload writes, the file holds exactly the last payload.
func TestPropertyCommFileLastWriteWins(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	rapid.Check(t, func(rt *rapid.T) {
		path, err := NewCommFile(UsePlayback)
		if err != nil {
			rt.Fatalf("NewCommFile failed: %v", err)
		}
		defer func() { _ = os.Remove(path) }()

		replays := rapid.SliceOfN(
			rapid.StringMatching(`/replays/[a-z0-9-]{1,24}\.slp`), 1, 8,
		).Draw(rt, "replays")

		for _, replay := range replays {
			if err := WriteCommFile(path, &CommPayload{Replay: replay}); err != nil {
				rt.Fatalf("WriteCommFile failed: %v", err)
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			rt.Fatalf("reading comm file failed: %v", err)
		}

		var got CommPayload
		if err := json.Unmarshal(data, &got); err != nil {
			rt.Fatalf("comm file is not valid JSON: %v", err)
		}
		if want := replays[len(replays)-1]; got.Replay != want {
			rt.Fatalf("file holds %q, want last write %q", got.Replay, want)
		}
	})
}

// TestPropertyCommFilePathsNeverCollide verifies that files created for any
// mix of use types get distinct paths.
func TestPropertyCommFilePathsNeverCollide(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	useTypes := []UseType{UsePlayback, UseSpectate}
	seen := make(map[string]bool)

	rapid.Check(t, func(rt *rapid.T) {
		useType := rapid.SampledFrom(useTypes).Draw(rt, "useType")

		path, err := NewCommFile(useType)
		if err != nil {
			rt.Fatalf("NewCommFile failed: %v", err)
		}
		defer func() { _ = os.Remove(path) }()

		if seen[path] {
			rt.Fatalf("path repeated across runs: %s", path)
		}
		seen[path] = true
	})
}
