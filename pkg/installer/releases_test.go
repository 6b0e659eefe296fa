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

package installer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedSourceLatest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"version": "3.4.0",
			"downloadUrls": {
				"linux": "https://example.com/linux.AppImage",
				"windows": "https://example.com/windows.zip"
			}
		}`))
	}))
	t.Cleanup(srv.Close)

	source := NewFeedSource(nil, srv.URL, "")
	release, err := source.Latest(context.Background(), dolphin.VariantNetplay)
	require.NoError(t, err)

	assert.Equal(t, "3.4.0", release.Version)
	assert.Equal(t, "https://example.com/linux.AppImage", release.DownloadURLs["linux"])
	assert.Equal(t, "https://example.com/windows.zip", release.DownloadURLs["windows"])
}

func TestFeedSourceRejectsMissingVersion(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"downloadUrls": {}}`))
	}))
	t.Cleanup(srv.Close)

	source := NewFeedSource(nil, srv.URL, "")
	_, err := source.Latest(context.Background(), dolphin.VariantNetplay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no version")
}

func TestFeedSourceUnconfiguredVariant(t *testing.T) {
	t.Parallel()

	source := NewFeedSource(nil, "https://example.com/netplay.json", "")
	_, err := source.Latest(context.Background(), dolphin.VariantPlayback)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no release feed configured")
}

func TestFeedSourceServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	source := NewFeedSource(nil, srv.URL, "")
	_, err := source.Latest(context.Background(), dolphin.VariantNetplay)
	require.Error(t, err)
}
