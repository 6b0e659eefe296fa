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

package installer

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestDownloadProgressRateLimitsPercentLines(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	var logs []string
	progress := downloadProgress(clock, time.Second, func(s string) {
		logs = append(logs, s)
	})

	progress(10, 100)
	assert.Equal(t, []string{"Downloading... 10%"}, logs)

	// Same percentage and sub-interval updates are swallowed.
	progress(10, 100)
	progress(25, 100)
	assert.Equal(t, []string{"Downloading... 10%"}, logs)

	clock.Advance(time.Second)
	progress(50, 100)
	assert.Equal(t, []string{"Downloading... 10%", "Downloading... 50%"}, logs)

	// Completion is always reported, rate limit or not.
	progress(100, 100)
	assert.Equal(t,
		[]string{"Downloading... 10%", "Downloading... 50%", "Downloading... 100%"}, logs)
}

func TestDownloadProgressWithoutContentLength(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	var logs []string
	progress := downloadProgress(clock, time.Second, func(s string) {
		logs = append(logs, s)
	})

	progress(5*1024*1024, -1)
	assert.Equal(t, []string{"Downloading... 5 MB"}, logs)

	// Rate limited until the clock moves on.
	progress(6*1024*1024, -1)
	assert.Len(t, logs, 1)

	clock.Advance(time.Second)
	progress(12*1024*1024, -1)
	assert.Equal(t, []string{"Downloading... 5 MB", "Downloading... 12 MB"}, logs)
}
