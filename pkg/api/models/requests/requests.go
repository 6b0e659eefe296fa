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

package requests

import (
	"encoding/json"

	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/SlippiLabs/dolman/pkg/database/historydb"
	"github.com/SlippiLabs/dolman/pkg/installer"
	"github.com/SlippiLabs/dolman/pkg/instances"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/google/uuid"
)

// RequestEnv carries the service dependencies a method handler may need,
// along with the raw params of the request being handled.
type RequestEnv struct {
	Platform  platforms.Platform
	Config    *config.Instance
	Registry  *instances.Registry
	Installer *installer.Manager
	History   *historydb.HistoryDB
	Params    json.RawMessage
	ID        uuid.UUID
}
