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

package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// AppVersion is overridden at build time via ldflags.
var AppVersion = AppVersionDev

const (
	AppVersionDev     = "DEVELOPMENT"
	AppName           = "dolman"
	CfgFile           = "config.toml"
	HistoryDBFile     = "history.db"
	APIRequestTimeout = 30 * time.Second
)

// ConfigDir is where the daemon's own configuration lives.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir is where the daemon keeps its databases and, by default, the
// emulator installations.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// LogDir is where the rotating service log lives.
func LogDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}
