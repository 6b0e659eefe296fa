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

// Package platforms holds the per-OS strategy for locating, laying out and
// installing emulator builds. The strategy is selected once at startup from
// the runtime platform; everything else asks it for paths instead of
// branching on GOOS.
package platforms

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/adrg/xdg"
)

// ErrUnsupportedPlatform is returned when the current OS has no defined
// paths, installer or download URL.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Platform identifiers. These double as the key space of a release's
// download URL map.
const (
	PlatformIDLinux   = "linux"
	PlatformIDMac     = "mac"
	PlatformIDWindows = "windows"
)

// InstallPaths is the filesystem layout of one installed emulator variant.
// All four values are pure functions of (platform, variant, base folder).
type InstallPaths struct {
	// InstallDir is the folder the release asset is installed into.
	InstallDir string
	// UserDir is the emulator's user data folder, holding Config, Cache
	// and friends. On some platforms it lives outside InstallDir.
	UserDir string
	// SysDir is the emulator's bundled system resources folder.
	SysDir string
	// ExePath is the absolute path of the emulator executable.
	ExePath string
}

// Platform is the per-OS capability set: path resolution for each launch
// variant plus the OS-specific install routine.
type Platform interface {
	// ID returns the unique ID of this platform.
	ID() string
	// InstallPaths resolves the layout of a variant installed under base.
	InstallPaths(base string, variant dolphin.LaunchVariant) InstallPaths
	// Install performs the OS-specific steps to install a downloaded
	// release asset into paths.InstallDir, reporting progress through logf.
	Install(ctx context.Context, assetPath string, paths InstallPaths, logf func(string)) error
	// UserConfigOutsideInstall reports whether the emulator keeps its user
	// folder outside the installation folder on this platform. A clean
	// install removes the user folder too when this is true.
	UserConfigOutsideInstall() bool
}

// DefaultInstallBase returns the folder under which per-variant emulator
// installations live unless the config overrides it.
func DefaultInstallBase() string {
	return filepath.Join(xdg.DataHome, "dolman")
}

// VariantDir returns the installation folder of a single variant under base.
func VariantDir(base string, variant dolphin.LaunchVariant) string {
	return filepath.Join(base, string(variant))
}

// Default returns the strategy for the running operating system.
func Default() (Platform, error) {
	switch runtime.GOOS {
	case "linux":
		return &Linux{}, nil
	case "darwin":
		return &Mac{}, nil
	case "windows":
		return &Windows{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, runtime.GOOS)
	}
}
