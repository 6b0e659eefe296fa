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

package updates

import (
	"context"
	"testing"

	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test binaries run with the development version baked in, so both paths
// below short-circuit before any release lookup happens.

func TestCheckOnDevBuild(t *testing.T) {
	t.Parallel()

	require.Equal(t, config.AppVersionDev, config.AppVersion)

	status, err := Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.AppVersionDev, status.CurrentVersion)
	assert.Empty(t, status.LatestVersion)
	assert.False(t, status.UpdateAvailable)
}

func TestApplyOnDevBuild(t *testing.T) {
	t.Parallel()

	require.Equal(t, config.AppVersionDev, config.AppVersion)

	_, err := Apply(context.Background())
	require.ErrorIs(t, err, ErrDevBuild)
}
