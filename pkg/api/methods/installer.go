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
	"github.com/SlippiLabs/dolman/pkg/api/notifications"
	"github.com/SlippiLabs/dolman/pkg/api/validation"
	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/installer"
	"github.com/rs/zerolog/log"
)

// installLogf relays installer progress lines to the log and to connected
// clients as install.progress notifications.
func installLogf(env requests.RequestEnv, variant string) func(string) { //nolint:gocritic // env copied into closure
	return func(msg string) {
		log.Info().Msgf("install %s: %s", variant, msg)
		notifications.InstallProgress(env.Registry.Notifications, models.InstallProgressParams{
			Variant: variant,
			Status:  msg,
		})
	}
}

//nolint:gocritic // single-use parameter in API handler
func HandleInstallValidate(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received install validate request")

	var params models.InstallValidateParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	variant := dolphin.LaunchVariant(params.Variant)
	result, err := env.Installer.Validate(context.Background(), variant, installLogf(env, params.Variant))
	if err != nil {
		return nil, err
	}

	return models.InstallStatusResponse{
		Variant:          params.Variant,
		Action:           string(result.Action),
		InstalledVersion: result.InstalledVersion,
		LatestVersion:    result.LatestVersion,
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleInstallUpdate(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received install update request")

	var params models.InstallUpdateParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	variant := dolphin.LaunchVariant(params.Variant)
	release, err := env.Installer.DownloadAndInstall(context.Background(), variant, installer.DownloadOptions{
		Log:          installLogf(env, params.Variant),
		CleanInstall: params.Clean,
	})
	if err != nil {
		return nil, err
	}

	return models.InstallStatusResponse{
		Variant:          params.Variant,
		Action:           models.InstallActionInstalled,
		InstalledVersion: release.Version,
		LatestVersion:    release.Version,
	}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleGamePathAdd(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received game path add request")

	var params models.AddGamePathParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	err := env.Installer.AddGamePath(dolphin.LaunchVariant(params.Variant), params.Path)
	if err != nil {
		return nil, err
	}
	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleConfigImport(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received config import request")

	var params models.ImportConfigParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	err := env.Installer.ImportConfig(dolphin.LaunchVariant(params.Variant), params.FromPath)
	if err != nil {
		return nil, err
	}
	return NoContent{}, nil
}

//nolint:gocritic // single-use parameter in API handler
func HandleCacheClear(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received cache clear request")

	var params models.ClearCacheParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	err := env.Installer.ClearCache(dolphin.LaunchVariant(params.Variant))
	if err != nil {
		return nil, err
	}
	return NoContent{}, nil
}
