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

package notifications

import "github.com/SlippiLabs/dolman/pkg/api/models"

func InstanceStarted(ns chan<- models.Notification, payload models.InstanceInfo) {
	ns <- models.Notification{
		Method: models.NotificationInstancesStarted,
		Params: payload,
	}
}

func InstanceExited(ns chan<- models.Notification, payload models.InstanceInfo) {
	ns <- models.Notification{
		Method: models.NotificationInstancesExited,
		Params: payload,
	}
}

func InstallProgress(ns chan<- models.Notification, payload models.InstallProgressParams) {
	ns <- models.Notification{
		Method: models.NotificationInstallProgress,
		Params: payload,
	}
}

func ReplayNew(ns chan<- models.Notification, path string) {
	ns <- models.Notification{
		Method: models.NotificationReplaysNew,
		Params: models.ReplayNewParams{Path: path},
	}
}
