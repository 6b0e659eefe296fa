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

//go:build deadlock

// Package syncutil wraps the mutex types so a build tag can swap in a
// deadlock detector. Build with -tags=deadlock during development.
package syncutil

import (
	"time"

	deadlock "github.com/sasha-s/go-deadlock"
)

// DeadlockEnabled reports which mutex implementation this build carries.
const DeadlockEnabled = true

// A lock held longer than this is reported as a suspected deadlock. The
// registry holds its lock across spawn and comm writes, so the window is
// generous.
func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
}

// Mutex is a detector-instrumented mutual exclusion lock.
type Mutex struct {
	deadlock.Mutex
}

// RWMutex mirrors Mutex for reader/writer locks.
type RWMutex struct {
	deadlock.RWMutex
}
