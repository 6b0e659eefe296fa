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
	"fmt"

	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/api/models/requests"
	"github.com/SlippiLabs/dolman/pkg/api/validation"
	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/dolphincfg"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/rs/zerolog/log"
)

func HandleSettings(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received settings request")

	installDir := env.Config.InstallDir()
	if installDir == "" {
		installDir = platforms.DefaultInstallBase()
	}

	return models.SettingsResponse{
		InstallDir:        installDir,
		ISOPath:           env.Config.ISOPath(),
		ReplayDir:         env.Config.ReplayDir(),
		MonthlySubfolders: env.Config.MonthlySubfolders(),
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleSettingsUpdate(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received settings update request")

	var params models.UpdateSettingsParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	if params.ISOPath != nil {
		log.Info().Str("isoPath", *params.ISOPath).Msg("update")
		env.Config.SetISOPath(*params.ISOPath)
	}

	if params.InstallDir != nil {
		log.Info().Str("installDir", *params.InstallDir).Msg("update")
		env.Config.SetInstallDir(*params.InstallDir)
	}

	if params.ReplayDir != nil {
		log.Info().Str("replayDir", *params.ReplayDir).Msg("update")
		env.Config.SetReplayDir(*params.ReplayDir)
	}

	if params.MonthlySubfolders != nil {
		log.Info().Bool("monthlySubfolders", *params.MonthlySubfolders).Msg("update")
		env.Config.SetMonthlySubfolders(*params.MonthlySubfolders)
	}

	if err := env.Config.Save(); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	// Replays are recorded by the netplay build, so its Dolphin.ini is
	// the one that has to agree with the service config.
	if params.ReplayDir != nil || params.MonthlySubfolders != nil {
		err := env.Installer.UpdateSettings(dolphin.VariantNetplay, dolphincfg.Settings{
			ReplayDir:         params.ReplayDir,
			MonthlySubfolders: params.MonthlySubfolders,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update emulator settings: %w", err)
		}
	}

	return NoContent{}, nil
}
