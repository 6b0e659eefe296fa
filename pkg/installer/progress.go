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
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// downloadProgress adapts byte counts from the HTTP client into
// percentage lines on the install log callback. Lines are rate limited so
// a fast connection does not flood the log, but 100% is always reported.
func downloadProgress(clock clockwork.Clock, interval time.Duration, logf func(string)) func(written, total int64) {
	var lastAt time.Time
	lastPct := -1

	return func(written, total int64) {
		if total <= 0 {
			// No Content-Length; report raw progress occasionally.
			if now := clock.Now(); now.Sub(lastAt) >= interval {
				lastAt = now
				logf(fmt.Sprintf("Downloading... %d MB", written/(1024*1024)))
			}
			return
		}

		pct := int(written * 100 / total)
		if pct == lastPct {
			return
		}
		now := clock.Now()
		if pct < 100 && now.Sub(lastAt) < interval {
			return
		}
		lastAt = now
		lastPct = pct
		logf(fmt.Sprintf("Downloading... %d%%", pct))
	}
}
