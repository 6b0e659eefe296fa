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

// Package installer keeps the emulator binaries installed and current.
// Each launch variant moves through absent, downloading, installing and
// installed; installs are destructive and not transactional, and a broken
// install heals itself on the next validate by reinstalling from scratch.
package installer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/dolphincfg"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/SlippiLabs/dolman/pkg/shared/httpclient"
	goversion "github.com/hashicorp/go-version"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	versionProbeTimeout = 10 * time.Second
	progressInterval    = time.Second
)

// versionPattern pulls a semantic version out of the emulator's --version
// output, which wraps it in build naming that varies between variants.
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+(?:[-+][0-9A-Za-z.-]+)?`)

// Action summarises what a validate or install call did.
type Action string

const (
	ActionNone      Action = "none"
	ActionInstalled Action = "installed"
	ActionUpdated   Action = "updated"
)

// Result reports the outcome of a validate or install cycle.
type Result struct {
	Action           Action
	InstalledVersion string
	LatestVersion    string
}

// DownloadOptions tune one DownloadAndInstall call.
type DownloadOptions struct {
	// Release skips the metadata fetch when the caller already has it.
	Release *ReleaseInfo
	// Log receives human-readable progress lines.
	Log func(string)
	// CleanInstall wipes the previous installation (and, where the user
	// folder lives outside it, that too) before installing.
	CleanInstall bool
}

// Manager orchestrates installation and updates of the emulator builds.
type Manager struct {
	platform    platforms.Platform
	source      ReleaseSource
	client      *httpclient.Client
	runner      helpers.CommandRunner
	editor      *dolphincfg.Editor
	clock       clockwork.Clock
	installBase string
}

func NewManager(
	platform platforms.Platform,
	source ReleaseSource,
	client *httpclient.Client,
	runner helpers.CommandRunner,
	editor *dolphincfg.Editor,
	clock clockwork.Clock,
	installBase string,
) *Manager {
	if client == nil {
		client = httpclient.DefaultClient
	}
	if runner == nil {
		runner = &helpers.ExecRunner{}
	}
	if editor == nil {
		editor = dolphincfg.DefaultEditor()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		platform:    platform,
		source:      source,
		client:      client,
		runner:      runner,
		editor:      editor,
		clock:       clock,
		installBase: installBase,
	}
}

// Paths returns the install layout for variant.
func (m *Manager) Paths(variant dolphin.LaunchVariant) platforms.InstallPaths {
	return m.platform.InstallPaths(m.installBase, variant)
}

// Validate brings the installation of variant up to date. A missing or
// unreadable binary triggers a fresh install; an outdated one triggers an
// update; otherwise nothing is downloaded.
func (m *Manager) Validate(ctx context.Context, variant dolphin.LaunchVariant, logf func(string)) (*Result, error) {
	logf = ensureLogf(logf)
	paths := m.Paths(variant)

	installed, ok := m.installedVersion(ctx, paths.ExePath)
	if !ok {
		logf("No working installation found, installing...")
		release, err := m.DownloadAndInstall(ctx, variant, DownloadOptions{Log: logf})
		if err != nil {
			return nil, err
		}
		return &Result{Action: ActionInstalled, LatestVersion: release.Version}, nil
	}

	release, err := m.source.Latest(ctx, variant)
	if err != nil {
		return nil, fmt.Errorf("failed to check latest version: %w", err)
	}

	upToDate, err := atLeast(installed, release.Version)
	if err != nil {
		// Unparseable versions read as corrupt; reinstall to self-heal.
		log.Warn().Err(err).Msgf("failed to compare versions: %s vs %s", installed, release.Version)
		upToDate = false
	}
	if upToDate {
		log.Info().Msgf("emulator %s is up to date: %s", string(variant), installed)
		logf("no update found")
		return &Result{Action: ActionNone, InstalledVersion: installed, LatestVersion: release.Version}, nil
	}

	logf(fmt.Sprintf("Update available: %s -> %s", installed, release.Version))
	if _, err := m.DownloadAndInstall(ctx, variant, DownloadOptions{Release: release, Log: logf}); err != nil {
		return nil, err
	}
	return &Result{Action: ActionUpdated, InstalledVersion: installed, LatestVersion: release.Version}, nil
}

// DownloadAndInstall fetches the release asset for variant and hands it
// to the platform install routine. It returns the release that was
// installed. A failure partway through can leave the prior installation
// half overwritten; the next Validate detects that and reinstalls.
func (m *Manager) DownloadAndInstall(
	ctx context.Context, variant dolphin.LaunchVariant, opts DownloadOptions,
) (*ReleaseInfo, error) {
	logf := ensureLogf(opts.Log)

	release := opts.Release
	if release == nil {
		var err error
		release, err = m.source.Latest(ctx, variant)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch release info: %w", err)
		}
	}

	dlURL, ok := release.DownloadURLs[m.platform.ID()]
	if !ok || dlURL == "" {
		return nil, fmt.Errorf("%w: release %s has no download for %q",
			platforms.ErrUnsupportedPlatform, release.Version, m.platform.ID())
	}

	scratch, err := os.MkdirTemp("", "dolman-download-")
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			log.Warn().Err(err).Msgf("failed to remove scratch dir: %s", scratch)
		}
	}()

	assetPath := filepath.Join(scratch, assetName(dlURL))
	logf(fmt.Sprintf("Downloading %s %s...", string(variant), release.Version))
	err = m.client.DownloadFile(ctx, httpclient.DownloadFileArgs{
		URL:        dlURL,
		OutputPath: assetPath,
		TempPath:   assetPath + ".part",
		Progress:   downloadProgress(m.clock, progressInterval, logf),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download release asset: %w", err)
	}

	paths := m.Paths(variant)
	if opts.CleanInstall {
		logf("Removing previous installation...")
		if err := os.RemoveAll(paths.InstallDir); err != nil {
			return nil, fmt.Errorf("failed to remove previous installation: %w", err)
		}
		if m.platform.UserConfigOutsideInstall() {
			if err := os.RemoveAll(paths.UserDir); err != nil {
				return nil, fmt.Errorf("failed to remove previous user folder: %w", err)
			}
		}
	}

	if err := m.platform.Install(ctx, assetPath, paths, logf); err != nil {
		return nil, err
	}

	log.Info().Msgf("installed emulator %s %s", string(variant), release.Version)
	logf("Installation complete.")
	return release, nil
}

// AddGamePath registers dir as a game search folder in the emulator
// settings of variant.
func (m *Manager) AddGamePath(variant dolphin.LaunchVariant, dir string) error {
	settings := dolphincfg.SettingsPath(m.Paths(variant).UserDir)
	return m.editor.AddGamePath(settings, dir)
}

// UpdateSettings applies managed settings to the emulator settings of
// variant.
func (m *Manager) UpdateSettings(variant dolphin.LaunchVariant, s dolphincfg.Settings) error {
	settings := dolphincfg.SettingsPath(m.Paths(variant).UserDir)
	return m.editor.UpdateSettings(settings, s)
}

// ImportConfig copies a user folder from a previous, separate
// installation over the current one, overwriting conflicts. A missing
// source folder is a no-op.
func (m *Manager) ImportConfig(variant dolphin.LaunchVariant, fromPath string) error {
	fi, err := os.Stat(fromPath)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Msgf("no user folder to import at %s", fromPath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check import source: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("import source is not a folder: %s", fromPath)
	}

	userDir := m.Paths(variant).UserDir
	log.Info().Msgf("importing user folder: %s -> %s", fromPath, userDir)
	if err := helpers.CopyDir(fromPath, userDir); err != nil {
		return fmt.Errorf("failed to import user folder: %w", err)
	}
	return nil
}

// ClearCache removes the emulator's cache folder for variant. A missing
// cache folder is not an error.
func (m *Manager) ClearCache(variant dolphin.LaunchVariant) error {
	cache := filepath.Join(m.Paths(variant).UserDir, "Cache")
	if err := os.RemoveAll(cache); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// installedVersion probes the binary at exePath for its version. Any
// failure reads as "not installed" so that corrupt installations are
// replaced rather than reported.
func (m *Manager) installedVersion(ctx context.Context, exePath string) (string, bool) {
	if fi, err := os.Stat(exePath); err != nil || fi.IsDir() {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, versionProbeTimeout)
	defer cancel()

	out, err := m.runner.Output(ctx, exePath, "--version")
	if err != nil {
		log.Debug().Err(err).Msgf("version probe failed: %s", exePath)
		return "", false
	}

	v := versionPattern.FindString(string(out))
	if v == "" {
		log.Debug().Msgf("no version in probe output: %q", strings.TrimSpace(string(out)))
		return "", false
	}
	return v, true
}

// atLeast reports whether installed sorts at or above latest under
// semantic version ordering.
func atLeast(installed, latest string) (bool, error) {
	iv, err := goversion.NewVersion(installed)
	if err != nil {
		return false, fmt.Errorf("failed to parse installed version: %w", err)
	}
	lv, err := goversion.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("failed to parse latest version: %w", err)
	}
	return iv.GreaterThanOrEqual(lv), nil
}

// assetName derives a local file name for a release asset URL.
func assetName(dlURL string) string {
	if u, err := url.Parse(dlURL); err == nil {
		if base := filepath.Base(u.Path); base != "." && base != "/" && base != "" {
			return base
		}
	}
	return "release-asset"
}

func ensureLogf(logf func(string)) func(string) {
	if logf == nil {
		return func(string) {}
	}
	return logf
}
