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
	"errors"
	"fmt"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/shared/httpclient"
)

// ReleaseInfo is the latest published release of one emulator variant, as
// reported by its release feed. DownloadURLs is keyed by platform ID.
type ReleaseInfo struct {
	DownloadURLs map[string]string `json:"downloadUrls"`
	Version      string            `json:"version"`
}

// ReleaseSource reports the latest available release for a launch
// variant. Results are fetched fresh on every call, never cached, so a
// validate cycle always compares against current metadata.
type ReleaseSource interface {
	Latest(ctx context.Context, variant dolphin.LaunchVariant) (*ReleaseInfo, error)
}

// FeedSource reads release metadata from per-variant JSON feeds over
// HTTP.
type FeedSource struct {
	client *httpclient.Client
	feeds  map[dolphin.LaunchVariant]string
}

func NewFeedSource(client *httpclient.Client, netplayFeed, playbackFeed string) *FeedSource {
	if client == nil {
		client = httpclient.DefaultClient
	}
	return &FeedSource{
		client: client,
		feeds: map[dolphin.LaunchVariant]string{
			dolphin.VariantNetplay:  netplayFeed,
			dolphin.VariantPlayback: playbackFeed,
		},
	}
}

func (s *FeedSource) Latest(ctx context.Context, variant dolphin.LaunchVariant) (*ReleaseInfo, error) {
	feed, ok := s.feeds[variant]
	if !ok || feed == "" {
		return nil, fmt.Errorf("no release feed configured for variant %q", string(variant))
	}

	var info ReleaseInfo
	if err := s.client.GetJSON(ctx, feed, &info); err != nil {
		return nil, fmt.Errorf("failed to fetch release info: %w", err)
	}
	if info.Version == "" {
		return nil, errors.New("release feed returned no version")
	}
	return &info, nil
}
