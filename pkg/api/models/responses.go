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

package models

import "time"

// InstanceInfo describes one live emulator instance. It doubles as the
// params payload of the instances.started and instances.exited
// notifications.
type InstanceInfo struct {
	StartedAt time.Time `json:"startedAt"`
	Index     *int      `json:"index,omitempty"`
	UseType   string    `json:"useType"`
	Variant   string    `json:"variant"`
	CommFile  string    `json:"commFile,omitempty"`
	PID       int       `json:"pid"`
}

type InstancesResponse struct {
	Instances []InstanceInfo `json:"instances"`
}

type VersionResponse struct {
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

// InstallStatusResponse reports the outcome of an install.validate or
// install.update call for one launch variant.
type InstallStatusResponse struct {
	Variant          string `json:"variant"`
	Action           string `json:"action"`
	InstalledVersion string `json:"installedVersion,omitempty"`
	LatestVersion    string `json:"latestVersion,omitempty"`
}

// Actions reported by InstallStatusResponse.
const (
	InstallActionNone      = "none"
	InstallActionInstalled = "installed"
	InstallActionUpdated   = "updated"
)

type SettingsResponse struct {
	InstallDir        string `json:"installDir"`
	ISOPath           string `json:"isoPath"`
	ReplayDir         string `json:"replayDir"`
	MonthlySubfolders bool   `json:"monthlySubfolders"`
}

// InstallProgressParams is the params payload of the install.progress
// notification. Status is a display-ready line, including download
// percentages.
type InstallProgressParams struct {
	Variant string `json:"variant"`
	Status  string `json:"status"`
}

type ReplayNewParams struct {
	Path string `json:"path"`
}

type HistoryResponseEntry struct {
	Time    time.Time `json:"time"`
	Index   *int      `json:"index,omitempty"`
	Type    string    `json:"type"`
	UseType string    `json:"useType"`
	Variant string    `json:"variant"`
	PID     int       `json:"pid"`
}

type HistoryResponse struct {
	Entries []HistoryResponseEntry `json:"entries"`
}

type UpdateCheckResponse struct {
	CurrentVersion  string `json:"currentVersion"`
	LatestVersion   string `json:"latestVersion"`
	UpdateAvailable bool   `json:"updateAvailable"`
}
