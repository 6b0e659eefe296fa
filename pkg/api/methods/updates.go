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

package methods

import (
	"context"

	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/api/models/requests"
	"github.com/SlippiLabs/dolman/pkg/updates"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandleUpdateCheck(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received update check request")

	status, err := updates.Check(context.Background())
	if err != nil {
		return nil, err
	}

	return models.UpdateCheckResponse{
		CurrentVersion:  status.CurrentVersion,
		LatestVersion:   status.LatestVersion,
		UpdateAvailable: status.UpdateAvailable,
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleUpdateInstall(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received update install request")

	status, err := updates.Apply(context.Background())
	if err != nil {
		return nil, err
	}

	return models.UpdateCheckResponse{
		CurrentVersion:  status.CurrentVersion,
		LatestVersion:   status.LatestVersion,
		UpdateAvailable: status.UpdateAvailable,
	}, nil
}
