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

package telemetry

import (
	"regexp"

	"github.com/getsentry/sentry-go"
)

// Usernames leak through home directory components in stack traces and
// error messages. Each pattern matches one OS convention.
var (
	homePathRe    = regexp.MustCompile(`(?i)/home/[^/]+/`)
	usersPathRe   = regexp.MustCompile(`(?i)/Users/[^/]+/`)
	windowsUserRe = regexp.MustCompile(`(?i)[a-zA-Z]:\\Users\\[^\\]+\\`)
)

// sanitizeEvent scrubs identifying data from an event before it leaves the
// machine. Runs as the BeforeSend hook on every outgoing event.
func sanitizeEvent(event *sentry.Event) *sentry.Event {
	// The SDK fills in the hostname even with ServerName set to "".
	event.ServerName = ""

	for i := range event.Exception {
		if event.Exception[i].Stacktrace == nil {
			continue
		}
		for j := range event.Exception[i].Stacktrace.Frames {
			frame := &event.Exception[i].Stacktrace.Frames[j]
			frame.AbsPath = sanitizePath(frame.AbsPath)
			frame.Filename = sanitizePath(frame.Filename)
		}
	}

	event.Message = sanitizePath(event.Message)

	for k, v := range event.Extra {
		if s, ok := v.(string); ok {
			event.Extra[k] = sanitizePath(s)
		}
	}

	return event
}

// sanitizePath replaces username segments in paths with a placeholder.
// Drive letters collapse to C: so the replacement never varies.
func sanitizePath(path string) string {
	if path == "" {
		return path
	}

	result := homePathRe.ReplaceAllString(path, "/home/<user>/")
	result = usersPathRe.ReplaceAllString(result, "/Users/<user>/")
	result = windowsUserRe.ReplaceAllString(result, "C:\\Users\\<user>\\")

	return result
}
