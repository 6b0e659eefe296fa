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

// Package service assembles the daemon: instance registry, installer,
// history database, replay watcher and API server.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SlippiLabs/dolman/pkg/api"
	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/SlippiLabs/dolman/pkg/database/historydb"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/SlippiLabs/dolman/pkg/installer"
	"github.com/SlippiLabs/dolman/pkg/instances"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/rs/zerolog/log"
)

func setupEnvironment() error {
	log.Info().Msg("creating service directories")
	dirs := []string{
		config.ConfigDir(),
		config.DataDir(),
		config.LogDir(),
	}
	for _, dir := range dirs {
		err := os.MkdirAll(dir, 0o750)
		if err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// recordAndForward drains the registry notification channel, persists
// lifecycle events to the history database and passes everything on to the
// API broadcaster. A slow or absent API consumer never blocks recording;
// notifications it cannot take are dropped.
func recordAndForward(
	ctx context.Context,
	history *historydb.HistoryDB,
	in <-chan models.Notification,
	out chan<- models.Notification,
) {
	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("stopping notification pipeline")
			return
		case notif := <-in:
			recordEvent(history, &notif)
			select {
			case out <- notif:
			default:
				log.Warn().Msgf("notification dropped, broadcaster not keeping up: %s", notif.Method)
			}
		}
	}
}

func recordEvent(history *historydb.HistoryDB, notif *models.Notification) {
	var eventType string
	switch notif.Method {
	case models.NotificationInstancesStarted:
		eventType = historydb.EventStarted
	case models.NotificationInstancesExited:
		eventType = historydb.EventExited
	default:
		return
	}

	info, ok := notif.Params.(models.InstanceInfo)
	if !ok {
		log.Error().Msgf("unexpected payload type for %s notification", notif.Method)
		return
	}

	evtTime := info.StartedAt
	if eventType == historydb.EventExited {
		evtTime = time.Now()
	}

	err := history.AddEvent(historydb.Event{
		Time:    evtTime,
		Type:    eventType,
		UseType: info.UseType,
		Variant: info.Variant,
		Index:   info.Index,
		PID:     info.PID,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to record instance event")
	}
}

// Start brings up the daemon and returns a function that shuts it down.
func Start(pl platforms.Platform, cfg *config.Instance) (stop func() error, err error) {
	log.Info().Msgf("version: %s", config.AppVersion)
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		if err != nil {
			cancel()
		}
	}()

	err = setupEnvironment()
	if err != nil {
		log.Error().Err(err).Msg("error setting up environment")
		return nil, err
	}

	installBase := cfg.InstallDir()
	if installBase == "" {
		installBase = platforms.DefaultInstallBase()
	}
	log.Info().Msgf("emulator install base: %s", installBase)

	launcher := instances.NewLauncher(pl, &helpers.ExecStarter{}, installBase)
	registry, registryNotifications := instances.NewRegistry(launcher)

	log.Info().Msg("opening history database")
	history, err := historydb.Open(filepath.Join(config.DataDir(), config.HistoryDBFile))
	if err != nil {
		log.Error().Err(err).Msg("error opening history database")
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	source := installer.NewFeedSource(nil, cfg.NetplayFeed(), cfg.PlaybackFeed())
	mgr := installer.NewManager(pl, source, nil, nil, nil, nil, installBase)

	log.Info().Msg("starting notification pipeline")
	apiNotifications := make(chan models.Notification, 100)
	go recordAndForward(ctx, history, registryNotifications, apiNotifications)

	log.Info().Msg("starting API service")
	go func() {
		if apiErr := api.Start(ctx, pl, cfg, registry, mgr, history, apiNotifications); apiErr != nil {
			log.Error().Err(apiErr).Msg("api server stopped")
		}
	}()

	if cfg.ReplayWatch() && cfg.ReplayDir() != "" {
		log.Info().Msgf("watching replay directory: %s", cfg.ReplayDir())
		watchErr := watchReplays(ctx, cfg.ReplayDir(), registry.Notifications)
		if watchErr != nil {
			log.Error().Err(watchErr).Msg("replay watcher failed to start (continuing without it)")
		}
	}

	stop = func() error {
		log.Info().Msg("stopping service")
		cancel()
		if closeErr := history.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing history database")
		}
		return nil
	}
	return stop, nil
}
