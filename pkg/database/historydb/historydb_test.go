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

package historydb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenCreatesParentDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "history.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	assert.FileExists(t, path)
}

func TestEventsNewestFirst(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	now := time.Now()

	idx := 1
	seeded := []Event{
		{Time: now.Add(-2 * time.Minute), Type: EventStarted, UseType: "netplay", Variant: "netplay", PID: 100},
		{Time: now.Add(-time.Minute), Type: EventStarted, UseType: "spectate", Variant: "playback", Index: &idx, PID: 101},
		{Time: now, Type: EventExited, UseType: "netplay", Variant: "netplay", PID: 100},
	}
	for _, evt := range seeded {
		require.NoError(t, db.AddEvent(evt))
	}

	events, err := db.Events(0)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, EventExited, events[0].Type)
	assert.Equal(t, 100, events[0].PID)
	assert.WithinDuration(t, now, events[0].Time, time.Second)
	assert.Nil(t, events[0].Index)

	assert.Equal(t, EventStarted, events[1].Type)
	assert.Equal(t, "spectate", events[1].UseType)
	require.NotNil(t, events[1].Index)
	assert.Equal(t, 1, *events[1].Index)

	assert.Equal(t, 100, events[2].PID)
}

func TestEventsLimit(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	for pid := 1; pid <= 5; pid++ {
		require.NoError(t, db.AddEvent(Event{
			Time:    time.Now(),
			Type:    EventStarted,
			UseType: "netplay",
			Variant: "netplay",
			PID:     pid,
		}))
	}

	events, err := db.Events(2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 5, events[0].PID)
	assert.Equal(t, 4, events[1].PID)
}

func TestEventsSurviveReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "history.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.AddEvent(Event{
		Time:    time.Now(),
		Type:    EventStarted,
		UseType: "playback",
		Variant: "playback",
		PID:     42,
	}))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.AddEvent(Event{
		Time:    time.Now(),
		Type:    EventExited,
		UseType: "playback",
		Variant: "playback",
		PID:     42,
	}))

	events, err := db.Events(0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventExited, events[0].Type)
	assert.Equal(t, EventStarted, events[1].Type)
}

func TestEventsEmptyDatabase(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	events, err := db.Events(10)
	require.NoError(t, err)
	assert.Empty(t, events)
}
