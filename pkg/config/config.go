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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SlippiLabs/dolman/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "DOLMAN_CFG"

	DefaultAPIPort      = 10473
	defaultNetplayFeed  = "https://releases.slippi.gg/netplay/latest.json"
	defaultPlaybackFeed = "https://releases.slippi.gg/playback/latest.json"
)

type Values struct {
	Dolphin      Dolphin   `toml:"dolphin,omitempty"`
	Replays      Replays   `toml:"replays,omitempty"`
	Releases     Releases  `toml:"releases,omitempty"`
	Service      Service   `toml:"service,omitempty"`
	Telemetry    Telemetry `toml:"telemetry,omitempty"`
	ConfigSchema int       `toml:"config_schema"`
	DebugLogging bool      `toml:"debug_logging"`
}

type Dolphin struct {
	// InstallDir overrides the base folder the per-variant emulator
	// installations live under. Empty means the platform default.
	InstallDir string `toml:"install_dir,omitempty"`
	// ISOPath is the disc image booted by netplay and playback launches.
	ISOPath string `toml:"iso_path,omitempty"`
}

type Replays struct {
	// RootDir is where the emulator writes replays. Empty leaves the
	// emulator's own default untouched and disables the replay watcher.
	RootDir           string `toml:"root_dir,omitempty"`
	MonthlySubfolders bool   `toml:"monthly_subfolders"`
	Watch             bool   `toml:"watch"`
}

type Releases struct {
	NetplayFeed  string `toml:"netplay_feed,omitempty"`
	PlaybackFeed string `toml:"playback_feed,omitempty"`
}

type Service struct {
	APIPort int `toml:"api_port"`
}

type Telemetry struct {
	DSN     string `toml:"dsn,omitempty"`
	Enabled bool   `toml:"enabled"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Replays: Replays{
		MonthlySubfolders: true,
		Watch:             true,
	},
	Releases: Releases{
		NetplayFeed:  defaultNetplayFeed,
		PlaybackFeed: defaultPlaybackFeed,
	},
	Service: Service{
		APIPort: DefaultAPIPort,
	},
}

type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	if cfgPath != "" {
		log.Debug().Msgf("env config path: %s", cfgPath)
	} else {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		mu:       syncutil.RWMutex{},
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	// This ensures fields not present in the file retain their default values.
	newVals := c.defaults
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	// set current schema version
	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path returns the location of the loaded config file.
func (c *Instance) Path() string {
	return c.cfgPath
}

func (c *Instance) InstallDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Dolphin.InstallDir
}

func (c *Instance) SetInstallDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Dolphin.InstallDir = dir
}

func (c *Instance) ISOPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Dolphin.ISOPath
}

func (c *Instance) SetISOPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Dolphin.ISOPath = path
}

func (c *Instance) ReplayDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Replays.RootDir
}

func (c *Instance) SetReplayDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Replays.RootDir = dir
}

func (c *Instance) MonthlySubfolders() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Replays.MonthlySubfolders
}

func (c *Instance) SetMonthlySubfolders(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Replays.MonthlySubfolders = enabled
}

func (c *Instance) ReplayWatch() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Replays.Watch
}

func (c *Instance) NetplayFeed() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Releases.NetplayFeed
}

func (c *Instance) PlaybackFeed() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Releases.PlaybackFeed
}

func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Service.APIPort == 0 {
		return DefaultAPIPort
	}
	return c.vals.Service.APIPort
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

func (c *Instance) TelemetryEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Telemetry.Enabled
}

func (c *Instance) TelemetryDSN() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Telemetry.DSN
}
