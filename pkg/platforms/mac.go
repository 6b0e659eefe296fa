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

package platforms

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/adrg/xdg"
)

const (
	macAppBundle = "Slippi Dolphin.app"

	macNetplayUserDir  = "com.project-slippi.dolphin"
	macPlaybackUserDir = "com.project-slippi.dolphin-playback"
)

// Mac installs app bundles from zip archives. The emulator's user folder
// lives outside the installation folder, under the user's data home.
type Mac struct{}

func (*Mac) ID() string {
	return PlatformIDMac
}

func (*Mac) UserConfigOutsideInstall() bool {
	return true
}

func (*Mac) InstallPaths(base string, variant dolphin.LaunchVariant) InstallPaths {
	installDir := VariantDir(base, variant)

	userName := macNetplayUserDir
	if variant == dolphin.VariantPlayback {
		userName = macPlaybackUserDir
	}

	bundle := filepath.Join(installDir, macAppBundle)
	return InstallPaths{
		InstallDir: installDir,
		UserDir:    filepath.Join(xdg.DataHome, userName),
		SysDir:     filepath.Join(bundle, "Contents", "Resources", "Sys"),
		ExePath:    filepath.Join(bundle, "Contents", "MacOS", "Slippi Dolphin"),
	}
}

// Install extracts the release zip into the install folder. The archive
// contains the complete app bundle, symlinks included.
func (*Mac) Install(_ context.Context, assetPath string, paths InstallPaths, logf func(string)) error {
	logf(fmt.Sprintf("Extracting app bundle to %s...", paths.InstallDir))
	if err := helpers.ExtractZip(assetPath, paths.InstallDir); err != nil {
		return fmt.Errorf("failed to extract app bundle: %w", err)
	}
	return nil
}
