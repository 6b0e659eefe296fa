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
	"os"
	"path/filepath"
	"testing"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/SlippiLabs/dolman/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootISOArgs(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"-b", "-e", "/isos/melee.iso"}, BootISOArgs("/isos/melee.iso"))
}

func TestLauncherArgumentOrder(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	starter := &mocks.MockCommandStarter{}
	l := NewLauncher(testPlatform(t, base), starter, base)

	proc := mocks.NewFakeProcess(1)
	exe := l.ExePath(dolphin.VariantPlayback)
	starter.On("Start", exe,
		[]string{"-i", "/tmp/comm.json", "-b", "-e", "/isos/melee.iso"}).
		Return(proc, nil).Once()

	got, err := l.Start(dolphin.VariantPlayback, "/tmp/comm.json", BootISOArgs("/isos/melee.iso")...)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Pid())
	starter.AssertExpectations(t)
}

func TestLauncherWithoutCommFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	starter := &mocks.MockCommandStarter{}
	l := NewLauncher(testPlatform(t, base), starter, base)

	// No comm file, no -i flag; extra args pass through untouched.
	starter.On("Start", l.ExePath(dolphin.VariantNetplay), []string{"-b", "-e", "/isos/melee.iso"}).
		Return(mocks.NewFakeProcess(2), nil).Once()

	_, err := l.Start(dolphin.VariantNetplay, "", BootISOArgs("/isos/melee.iso")...)
	require.NoError(t, err)
	starter.AssertExpectations(t)
}

func TestLauncherMissingExecutable(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	pl := &mocks.MockPlatform{}
	pl.On("InstallPaths", base, dolphin.VariantNetplay).Return(platforms.InstallPaths{
		ExePath: filepath.Join(base, "netplay", "dolphin"),
	})

	l := NewLauncher(pl, &mocks.MockCommandStarter{}, base)
	_, err := l.Start(dolphin.VariantNetplay, "")
	require.ErrorIs(t, err, dolphin.ErrExecutableNotFound)
}

func TestLauncherRejectsDirectoryExecutable(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	exeDir := filepath.Join(base, "netplay", "dolphin")
	require.NoError(t, os.MkdirAll(exeDir, 0o755))

	pl := &mocks.MockPlatform{}
	pl.On("InstallPaths", base, dolphin.VariantNetplay).Return(platforms.InstallPaths{
		ExePath: exeDir,
	})

	l := NewLauncher(pl, &mocks.MockCommandStarter{}, base)
	_, err := l.Start(dolphin.VariantNetplay, "")
	require.ErrorIs(t, err, dolphin.ErrExecutableNotFound)
}
