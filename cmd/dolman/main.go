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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/SlippiLabs/dolman/internal/telemetry"
	"github.com/SlippiLabs/dolman/pkg/cli"
	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/SlippiLabs/dolman/pkg/service"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	pl, err := platforms.Default()
	if err != nil {
		return fmt.Errorf("cannot run on this platform: %w", err)
	}

	flags := cli.SetupFlags()
	flags.Pre(pl)

	if os.Geteuid() == 0 {
		return errors.New("dolman cannot be run as root")
	}

	cfg := cli.Setup(pl, config.BaseDefaults, []io.Writer{os.Stderr})

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	flags.Post(cfg, pl)

	if helpers.IsServiceRunning(cfg) {
		return errors.New("service is already running")
	}

	stopSvc, err := service.Start(pl, cfg)
	if err != nil {
		log.Error().Msgf("error starting service: %s", err)
		return fmt.Errorf("error starting service: %w", err)
	}
	defer func() {
		if stopErr := stopSvc(); stopErr != nil {
			log.Error().Msgf("error stopping service: %s", stopErr)
		}
		telemetry.Close()
	}()

	log.Info().Msg("service started")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	return nil
}
