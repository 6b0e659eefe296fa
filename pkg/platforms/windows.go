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
)

// Windows installs zip builds that run fully portable: the user folder
// sits next to the executable inside the installation folder.
type Windows struct{}

func (*Windows) ID() string {
	return PlatformIDWindows
}

func (*Windows) UserConfigOutsideInstall() bool {
	return false
}

func (*Windows) InstallPaths(base string, variant dolphin.LaunchVariant) InstallPaths {
	installDir := VariantDir(base, variant)

	return InstallPaths{
		InstallDir: installDir,
		UserDir:    filepath.Join(installDir, "User"),
		SysDir:     filepath.Join(installDir, "Sys"),
		ExePath:    filepath.Join(installDir, "Slippi Dolphin.exe"),
	}
}

// Install extracts the release zip into the install folder.
func (*Windows) Install(_ context.Context, assetPath string, paths InstallPaths, logf func(string)) error {
	logf(fmt.Sprintf("Extracting emulator to %s...", paths.InstallDir))
	if err := helpers.ExtractZip(assetPath, paths.InstallDir); err != nil {
		return fmt.Errorf("failed to extract emulator: %w", err)
	}
	return nil
}
