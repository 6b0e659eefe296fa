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

package mocks

import (
	"context"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/stretchr/testify/mock"
)

// MockPlatform is a testify mock of the platforms.Platform interface.
type MockPlatform struct {
	mock.Mock
}

func (m *MockPlatform) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPlatform) InstallPaths(base string, variant dolphin.LaunchVariant) platforms.InstallPaths {
	args := m.Called(base, variant)
	paths, _ := args.Get(0).(platforms.InstallPaths)
	return paths
}

func (m *MockPlatform) Install(
	ctx context.Context, assetPath string, paths platforms.InstallPaths, logf func(string),
) error {
	args := m.Called(ctx, assetPath, paths, logf)
	//nolint:wrapcheck // mock returns configured error as-is
	return args.Error(0)
}

func (m *MockPlatform) UserConfigOutsideInstall() bool {
	args := m.Called()
	return args.Bool(0)
}
