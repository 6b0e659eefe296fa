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

// Package updates checks for and applies new releases of the service
// binary itself. Emulator installs are handled by the installer package,
// not here.
package updates

import (
	"context"
	"errors"
	"fmt"

	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/rs/zerolog/log"
)

const repositorySlug = "SlippiLabs/dolman"

// ErrDevBuild is returned when self-update is attempted on a build with no
// release version baked in.
var ErrDevBuild = errors.New("self-update unavailable for development builds")

// Status reports the service binary's release state.
type Status struct {
	CurrentVersion  string `json:"currentVersion"`
	LatestVersion   string `json:"latestVersion"`
	UpdateAvailable bool   `json:"updateAvailable"`
}

// Check queries the release repository for a newer service binary.
// Development builds always report no update.
func Check(ctx context.Context) (*Status, error) {
	status := &Status{CurrentVersion: config.AppVersion}

	if config.AppVersion == config.AppVersionDev {
		return status, nil
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		log.Debug().Msg("no release found for this platform")
		return status, nil
	}

	status.LatestVersion = latest.Version()
	status.UpdateAvailable = latest.GreaterThan(config.AppVersion)
	return status, nil
}

// Apply replaces the running service binary with the latest release. The
// new version takes effect on next start.
func Apply(ctx context.Context) (*Status, error) {
	if config.AppVersion == config.AppVersionDev {
		return nil, ErrDevBuild
	}

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return nil, fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return nil, errors.New("no release found for this platform")
	}

	status := &Status{
		CurrentVersion: config.AppVersion,
		LatestVersion:  latest.Version(),
	}

	if latest.LessOrEqual(config.AppVersion) {
		log.Info().Msgf("service binary is up to date: %s", config.AppVersion)
		return status, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}

	log.Info().Msgf("updating service binary: %s -> %s", config.AppVersion, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return nil, fmt.Errorf("failed to apply update: %w", err)
	}

	log.Info().Msgf("updated service binary to %s, restart to take effect", latest.Version())
	return status, nil
}
