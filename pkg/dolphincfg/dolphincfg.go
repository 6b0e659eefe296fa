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

// Package dolphincfg patches the emulator's own INI settings files. Edits
// are read-modify-write: sections and keys the manager does not own are
// carried through untouched, so user tweaks made inside the emulator
// survive.
package dolphincfg

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// ConfigFileName is the emulator's main settings file, found under
// <UserDir>/Config.
const ConfigFileName = "Dolphin.ini"

const (
	generalSection = "General"
	coreSection    = "Core"

	isoPathsCountKey = "ISOPaths"
	isoPathKeyPrefix = "ISOPath"

	replayDirKey    = "SlippiReplayDir"
	monthFoldersKey = "SlippiReplayMonthFolders"
)

// SettingsPath returns the path of the main settings file under a user
// folder.
func SettingsPath(userDir string) string {
	return filepath.Join(userDir, "Config", ConfigFileName)
}

// Settings is the subset of emulator settings the manager owns. Nil fields
// are left untouched.
type Settings struct {
	// ReplayDir is where the emulator writes replay recordings.
	ReplayDir *string
	// MonthlySubfolders nests replays into YYYY-MM folders when true.
	MonthlySubfolders *bool
}

// Editor applies managed settings to emulator INI files.
type Editor struct {
	fs afero.Fs
}

func NewEditor(fs afero.Fs) *Editor {
	return &Editor{fs: fs}
}

// DefaultEditor returns an editor backed by the OS filesystem.
func DefaultEditor() *Editor {
	return NewEditor(afero.NewOsFs())
}

func (e *Editor) load(path string) (*ini.File, error) {
	exists, err := afero.Exists(e.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check settings file: %w", err)
	}
	if !exists {
		// The emulator may not have run yet. Start from an empty file
		// rather than failing: the emulator merges on top of it later.
		return ini.Empty(), nil
	}

	data, err := afero.ReadFile(e.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return cfg, nil
}

func (e *Editor) save(path string, cfg *ini.File) error {
	if err := e.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := afero.WriteFile(e.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// AddGamePath registers dir as a game search folder in the settings file at
// path. The emulator indexes search folders as ISOPath0..N-1 plus an
// ISOPaths count; a folder already on the list is not added twice.
func (e *Editor) AddGamePath(path, dir string) error {
	cfg, err := e.load(path)
	if err != nil {
		return err
	}

	sec := cfg.Section(generalSection)
	count := sec.Key(isoPathsCountKey).MustInt(0)
	for i := 0; i < count; i++ {
		if sec.Key(isoPathKeyPrefix + strconv.Itoa(i)).String() == dir {
			return nil
		}
	}

	sec.Key(isoPathKeyPrefix + strconv.Itoa(count)).SetValue(dir)
	sec.Key(isoPathsCountKey).SetValue(strconv.Itoa(count + 1))
	return e.save(path, cfg)
}

// GamePaths returns the game search folders currently registered in the
// settings file at path.
func (e *Editor) GamePaths(path string) ([]string, error) {
	cfg, err := e.load(path)
	if err != nil {
		return nil, err
	}

	sec := cfg.Section(generalSection)
	count := sec.Key(isoPathsCountKey).MustInt(0)
	paths := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if v := sec.Key(isoPathKeyPrefix + strconv.Itoa(i)).String(); v != "" {
			paths = append(paths, v)
		}
	}
	return paths, nil
}

// UpdateSettings applies s to the settings file at path.
func (e *Editor) UpdateSettings(path string, s Settings) error {
	if s.ReplayDir == nil && s.MonthlySubfolders == nil {
		return nil
	}

	cfg, err := e.load(path)
	if err != nil {
		return err
	}

	sec := cfg.Section(coreSection)
	if s.ReplayDir != nil {
		sec.Key(replayDirKey).SetValue(*s.ReplayDir)
	}
	if s.MonthlySubfolders != nil {
		sec.Key(monthFoldersKey).SetValue(iniBool(*s.MonthlySubfolders))
	}
	return e.save(path, cfg)
}

// iniBool renders a boolean the way the emulator's own writer does.
func iniBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
