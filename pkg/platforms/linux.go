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
	"os"
	"path/filepath"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/adrg/xdg"
)

const (
	linuxNetplayAppImage  = "Slippi_Online-x86_64.AppImage"
	linuxPlaybackAppImage = "Slippi_Playback-x86_64.AppImage"

	linuxNetplayUserDir  = "SlippiOnline"
	linuxPlaybackUserDir = "SlippiPlayback"
)

// Linux installs AppImage builds. The emulator's user folder follows the
// upstream XDG convention and lives outside the installation folder.
type Linux struct{}

func (*Linux) ID() string {
	return PlatformIDLinux
}

func (*Linux) UserConfigOutsideInstall() bool {
	return true
}

func (*Linux) InstallPaths(base string, variant dolphin.LaunchVariant) InstallPaths {
	installDir := VariantDir(base, variant)

	exeName := linuxNetplayAppImage
	userName := linuxNetplayUserDir
	if variant == dolphin.VariantPlayback {
		exeName = linuxPlaybackAppImage
		userName = linuxPlaybackUserDir
	}

	return InstallPaths{
		InstallDir: installDir,
		UserDir:    filepath.Join(xdg.ConfigHome, userName),
		SysDir:     filepath.Join(installDir, "Sys"),
		ExePath:    filepath.Join(installDir, exeName),
	}
}

// Install copies the downloaded AppImage to the canonical executable path
// and marks it executable. Release assets sometimes carry version suffixes,
// so the copy renames rather than preserving the asset name.
func (*Linux) Install(_ context.Context, assetPath string, paths InstallPaths, logf func(string)) error {
	if err := os.MkdirAll(paths.InstallDir, 0o755); err != nil {
		return fmt.Errorf("failed to create install dir: %w", err)
	}

	logf(fmt.Sprintf("Installing AppImage to %s...", paths.InstallDir))
	if err := helpers.CopyFile(assetPath, paths.ExePath); err != nil {
		return fmt.Errorf("failed to copy AppImage: %w", err)
	}

	logf("Marking AppImage executable...")
	if err := os.Chmod(paths.ExePath, 0o755); err != nil { //nolint:gosec // the emulator binary must be executable
		return fmt.Errorf("failed to chmod AppImage: %w", err)
	}

	return nil
}
