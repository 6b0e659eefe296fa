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

package dolphin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// CommMode selects how the emulator interprets a comm payload.
type CommMode string

const (
	CommModeNormal CommMode = "normal"
	CommModeMirror CommMode = "mirror"
	CommModeQueue  CommMode = "queue"
)

// RollbackDisplayMethod controls how rollback frames are presented during
// playback.
type RollbackDisplayMethod string

const (
	RollbackDisplayOff     RollbackDisplayMethod = "off"
	RollbackDisplayNormal  RollbackDisplayMethod = "normal"
	RollbackDisplayVisible RollbackDisplayMethod = "visible"
)

// QueueItem is one entry of a queue-mode payload.
type QueueItem struct {
	StartFrame  *int   `json:"startFrame,omitempty"`
	EndFrame    *int   `json:"endFrame,omitempty"`
	GameStartAt string `json:"gameStartAt,omitempty"`
	GameStation string `json:"gameStation,omitempty"`
	Path        string `json:"path"`
}

// CommPayload is the message written into an instance's comm file. The
// manager serializes it verbatim and never validates field combinations;
// interpreting them is the emulator's job. Optional fields use pointers so
// that a caller-set false or zero survives the round trip and an unset field
// is omitted entirely.
type CommPayload struct {
	StartFrame            *int                  `json:"startFrame,omitempty"`
	EndFrame              *int                  `json:"endFrame,omitempty"`
	OutputOverlayFiles    *bool                 `json:"outputOverlayFiles,omitempty"`
	IsRealTimeMode        *bool                 `json:"isRealTimeMode,omitempty"`
	ShouldResync          *bool                 `json:"shouldResync,omitempty"`
	Mode                  CommMode              `json:"mode,omitempty"`
	Replay                string                `json:"replay,omitempty"`
	CommandID             string                `json:"commandId,omitempty"`
	RollbackDisplayMethod RollbackDisplayMethod `json:"rollbackDisplayMethod,omitempty"`
	Queue                 []QueueItem           `json:"queue,omitempty"`
}

// CommDirName is the subdirectory of the system temp dir that holds all comm
// files created by this process.
const CommDirName = "dolman"

// NewCommFile creates an empty comm file for an instance of the given use
// type and returns its path. The name embeds the use type and a random
// UUID suffix so concurrently created files never collide.
func NewCommFile(useType UseType) (string, error) {
	dir := filepath.Join(os.TempDir(), CommDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create comm dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("comm-%s-%s.json", useType, uuid.NewString()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644) //nolint:gosec // path is built from a UUID
	if err != nil {
		return "", fmt.Errorf("failed to create comm file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close comm file: %w", err)
	}

	return path, nil
}

// WriteCommFile serializes payload as JSON and fully overwrites the comm
// file at path. The file is not created if missing: once an instance has
// exited and its comm file was cleaned up, a write must fail rather than
// resurrect the file.
func WriteCommFile(path string, payload *CommPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal comm payload: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644) //nolint:gosec // path was generated by NewCommFile
	if err != nil {
		return fmt.Errorf("failed to open comm file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write comm file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close comm file: %w", err)
	}

	return nil
}

// RemoveCommFile deletes a comm file. A file that is already gone is not an
// error, so cleanup can race manual removal safely.
func RemoveCommFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove comm file: %w", err)
	}
	return nil
}
