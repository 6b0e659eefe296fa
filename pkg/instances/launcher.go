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

package instances

import (
	"fmt"
	"os"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/rs/zerolog/log"
)

// BootISOArgs returns the argument pair that boots the emulator straight
// into a disc image instead of its main menu.
func BootISOArgs(isoPath string) []string {
	return []string{"-b", "-e", isoPath}
}

// Launcher spawns emulator processes. It resolves the executable for a
// launch variant through the platform strategy and builds the argument
// list; it never waits for the emulator to become ready, which is
// signalled out of band through the comm file protocol.
type Launcher struct {
	platform    platforms.Platform
	starter     helpers.CommandStarter
	installBase string
}

func NewLauncher(platform platforms.Platform, starter helpers.CommandStarter, installBase string) *Launcher {
	return &Launcher{
		platform:    platform,
		starter:     starter,
		installBase: installBase,
	}
}

// ExePath returns the executable path the launcher would start for variant,
// without checking it exists.
func (l *Launcher) ExePath(variant dolphin.LaunchVariant) string {
	return l.platform.InstallPaths(l.installBase, variant).ExePath
}

// Start spawns the emulator for variant. When commFile is non-empty the
// process is told to watch it for commands. extraArgs are appended to the
// argument list verbatim.
func (l *Launcher) Start(
	variant dolphin.LaunchVariant, commFile string, extraArgs ...string,
) (helpers.ProcessHandle, error) {
	exePath := l.ExePath(variant)
	if fi, err := os.Stat(exePath); err != nil || fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", dolphin.ErrExecutableNotFound, exePath)
	}

	args := make([]string, 0, len(extraArgs)+2)
	if commFile != "" {
		args = append(args, "-i", commFile)
	}
	args = append(args, extraArgs...)

	log.Debug().Msgf("starting emulator: %s %v", exePath, args)
	proc, err := l.starter.Start(exePath, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to start emulator: %w", err)
	}
	return proc, nil
}
