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

import (
	"encoding/json"

	"github.com/google/uuid"
)

const (
	NotificationInstancesStarted = "instances.started"
	NotificationInstancesExited  = "instances.exited"
	NotificationInstallProgress  = "install.progress"
	NotificationReplaysNew       = "replays.new"
)

const (
	MethodInstances       = "instances"
	MethodInstancesLaunch = "instances.launch"
	MethodInstancesKill   = "instances.kill"
	MethodInstallValidate = "install.validate"
	MethodInstallUpdate   = "install.update"
	MethodGamePathAdd     = "install.gamepath.add"
	MethodConfigImport    = "install.config.import"
	MethodCacheClear      = "install.cache.clear"
	MethodSettings        = "settings"
	MethodSettingsUpdate  = "settings.update"
	MethodUpdateCheck     = "update.check"
	MethodUpdateInstall   = "update.install"
	MethodHistory         = "history"
	MethodVersion         = "version"
)

// Notification is a server-initiated message pushed to every connected
// client. Params must marshal to JSON.
type Notification struct {
	Params any
	Method string
}

type RequestObject struct {
	ID      *uuid.UUID      `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type ErrorObject struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type ResponseObject struct {
	Result  any          `json:"result"`
	Error   *ErrorObject `json:"error,omitempty"`
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
}

// ResponseErrorObject exists for sending errors, so we can omit result from
// the response, but so nil responses are still returned when using the main
// ResponseObject.
type ResponseErrorObject struct {
	Error   *ErrorObject `json:"error"`
	JSONRPC string       `json:"jsonrpc"`
	ID      uuid.UUID    `json:"id"`
}
