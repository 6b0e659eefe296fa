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

package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/database/historydb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openHistory(t *testing.T) *historydb.HistoryDB {
	t.Helper()

	db, err := historydb.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordEventMapsLifecycleNotifications(t *testing.T) {
	t.Parallel()

	history := openHistory(t)
	started := time.Now().Add(-time.Minute)
	idx := 2

	recordEvent(history, &models.Notification{
		Method: models.NotificationInstancesStarted,
		Params: models.InstanceInfo{
			StartedAt: started,
			UseType:   "spectate",
			Variant:   "playback",
			Index:     &idx,
			PID:       77,
		},
	})
	recordEvent(history, &models.Notification{
		Method: models.NotificationInstancesExited,
		Params: models.InstanceInfo{
			StartedAt: started,
			UseType:   "spectate",
			Variant:   "playback",
			Index:     &idx,
			PID:       77,
		},
	})

	// Non-lifecycle notifications and malformed payloads record nothing.
	recordEvent(history, &models.Notification{
		Method: models.NotificationInstallProgress,
		Params: models.InstallProgressParams{Variant: "netplay", Status: "Downloading... 50%"},
	})
	recordEvent(history, &models.Notification{
		Method: models.NotificationInstancesStarted,
		Params: "not an instance info",
	})

	events, err := history.Events(0)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, historydb.EventExited, events[0].Type)
	assert.Equal(t, 77, events[0].PID)
	// Exit events are stamped when they happen, not when the instance
	// started.
	assert.WithinDuration(t, time.Now(), events[0].Time, 5*time.Second)

	assert.Equal(t, historydb.EventStarted, events[1].Type)
	assert.Equal(t, "spectate", events[1].UseType)
	assert.Equal(t, "playback", events[1].Variant)
	require.NotNil(t, events[1].Index)
	assert.Equal(t, 2, *events[1].Index)
	assert.WithinDuration(t, started, events[1].Time, time.Second)
}

func TestRecordAndForwardNeverBlocksOnSlowConsumer(t *testing.T) {
	t.Parallel()

	history := openHistory(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan models.Notification)
	out := make(chan models.Notification, 1)
	go recordAndForward(ctx, history, in, out)

	for pid := 1; pid <= 3; pid++ {
		in <- models.Notification{
			Method: models.NotificationInstancesStarted,
			Params: models.InstanceInfo{
				StartedAt: time.Now(),
				UseType:   "netplay",
				Variant:   "netplay",
				PID:       pid,
			},
		}
	}

	// Nobody drained out, yet all three events landed in the history
	// database: the pipeline dropped instead of stalling.
	require.Eventually(t, func() bool {
		events, err := history.Events(0)
		return err == nil && len(events) == 3
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case notif := <-out:
		assert.Equal(t, models.NotificationInstancesStarted, notif.Method)
		info, ok := notif.Params.(models.InstanceInfo)
		require.True(t, ok)
		assert.Equal(t, 1, info.PID, "first notification forwarded before the buffer filled")
	default:
		t.Fatal("expected at least one forwarded notification")
	}
}

func TestRecordAndForwardStopsOnCancel(t *testing.T) {
	t.Parallel()

	history := openHistory(t)
	ctx, cancel := context.WithCancel(context.Background())

	in := make(chan models.Notification)
	out := make(chan models.Notification, 1)

	done := make(chan struct{})
	go func() {
		recordAndForward(ctx, history, in, out)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pipeline did not stop on context cancel")
	}
}
