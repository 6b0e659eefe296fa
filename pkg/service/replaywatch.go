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

package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/api/notifications"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const replayExt = ".slp"

// watchReplays watches the replay directory and announces new replay files
// as replays.new notifications. The emulator groups replays into monthly
// subdirectories when that setting is on, so new directories are picked up
// and watched as they appear.
func watchReplays(ctx context.Context, rootDir string, ns chan<- models.Notification) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	if err := watcher.Add(rootDir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", rootDir, err)
	}

	entries, err := os.ReadDir(rootDir)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			sub := filepath.Join(rootDir, entry.Name())
			if addErr := watcher.Add(sub); addErr != nil {
				log.Warn().Err(addErr).Msgf("failed to watch replay subdirectory: %s", sub)
			}
		}
	}

	go watchReplayEvents(ctx, watcher, ns)
	return nil
}

func watchReplayEvents(ctx context.Context, watcher *fsnotify.Watcher, ns chan<- models.Notification) {
	defer func() {
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("stopping replay watcher")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			if info.IsDir() {
				// new monthly folder
				if err := watcher.Add(event.Name); err != nil {
					log.Warn().Err(err).Msgf("failed to watch replay subdirectory: %s", event.Name)
				}
				continue
			}

			if strings.EqualFold(filepath.Ext(event.Name), replayExt) {
				log.Debug().Msgf("new replay: %s", event.Name)
				notifications.ReplayNew(ns, event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("fsnotify error")
		}
	}
}
