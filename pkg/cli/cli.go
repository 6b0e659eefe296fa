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

// Package cli defines the command line flags shared by every entry point
// and the common environment setup they run before the service starts.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/SlippiLabs/dolman/internal/telemetry"
	"github.com/SlippiLabs/dolman/pkg/api/client"
	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/config"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/SlippiLabs/dolman/pkg/platforms"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// installTimeout bounds emulator download and install triggered from the
// command line, which can far outlast a normal API request.
const installTimeout = 30 * time.Minute

type Flags struct {
	Launch    *string
	Kill      *string
	Variant   *string
	Index     *int
	ISO       *string
	Update    *string
	Instances *bool
	API       *string
	Version   *bool
}

// SetupFlags defines all common CLI flags between platforms.
func SetupFlags() *Flags {
	return &Flags{
		Launch: flag.String(
			"launch",
			"",
			"launch an emulator instance (playback, spectate, netplay or config)",
		),
		Kill: flag.String(
			"kill",
			"",
			"force-stop the emulator instance for a use type",
		),
		Variant: flag.String(
			"variant",
			"",
			"emulator build for -launch/-kill/-update (netplay or playback)",
		),
		Index: flag.Int(
			"index",
			-1,
			"broadcast index for spectate instances",
		),
		ISO: flag.String(
			"iso",
			"",
			"disc image to boot, overriding the configured one",
		),
		Update: flag.String(
			"update",
			"",
			"download and install the latest emulator build (netplay or playback)",
		),
		Instances: flag.Bool(
			"instances",
			false,
			"list live emulator instances",
		),
		API: flag.String(
			"api",
			"",
			"send method and params to API and print response",
		),
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre(pl platforms.Platform) {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("Dolman v%s (%s)\n", config.AppVersion, pl.ID())
		os.Exit(0)
	}
}

func callAPI(ctx context.Context, cfg *config.Instance, method, params string) {
	resp, err := client.LocalClient(ctx, cfg, method, params)
	if err != nil {
		log.Error().Err(err).Msgf("error calling API method: %s", method)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_, _ = fmt.Println(resp)
	os.Exit(0)
}

func (f *Flags) launchParams() string {
	params := models.LaunchParams{UseType: *f.Launch}
	if *f.Variant != "" {
		params.Variant = f.Variant
	}
	if *f.Index >= 0 {
		params.Index = f.Index
	}
	if *f.ISO != "" {
		params.ISOPath = f.ISO
	}

	data, err := json.Marshal(&params)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error encoding params: %v\n", err)
		os.Exit(1)
	}
	return string(data)
}

func (f *Flags) killParams() string {
	params := models.KillParams{UseType: *f.Kill}
	if *f.Variant != "" {
		params.Variant = f.Variant
	}
	if *f.Index >= 0 {
		params.Index = f.Index
	}

	data, err := json.Marshal(&params)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error encoding params: %v\n", err)
		os.Exit(1)
	}
	return string(data)
}

// Post actions all remaining common flags that require the environment to
// be set up. Logging is allowed.
func (f *Flags) Post(cfg *config.Instance, _ platforms.Platform) {
	switch {
	case isFlagPassed("launch"):
		if *f.Launch == "" {
			_, _ = fmt.Fprint(os.Stderr, "Error: launch flag requires a use type\n")
			os.Exit(1)
		}
		callAPI(context.Background(), cfg, models.MethodInstancesLaunch, f.launchParams())
	case isFlagPassed("kill"):
		if *f.Kill == "" {
			_, _ = fmt.Fprint(os.Stderr, "Error: kill flag requires a use type\n")
			os.Exit(1)
		}
		callAPI(context.Background(), cfg, models.MethodInstancesKill, f.killParams())
	case isFlagPassed("update"):
		if *f.Update == "" {
			_, _ = fmt.Fprint(os.Stderr, "Error: update flag requires a variant\n")
			os.Exit(1)
		}

		data, err := json.Marshal(&models.InstallUpdateParams{Variant: *f.Update})
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error encoding params: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), installTimeout)
		defer cancel()
		callAPI(ctx, cfg, models.MethodInstallUpdate, string(data))
	case *f.Instances:
		callAPI(context.Background(), cfg, models.MethodInstances, "")
	case isFlagPassed("api"):
		if *f.API == "" {
			_, _ = fmt.Fprint(os.Stderr, "Error: api flag requires a value\n")
			os.Exit(1)
		}

		ps := strings.SplitN(*f.API, ":", 2)
		method := ps[0]
		params := ""
		if len(ps) > 1 {
			params = ps[1]
		}
		callAPI(context.Background(), cfg, method, params)
	}
}

// Setup initializes the user config and logging. Returns a user config object.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	pl platforms.Platform,
	defaultConfig config.Values,
	writers []io.Writer,
) *config.Instance {
	err := helpers.InitLogging(config.LogDir(), writers)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(config.ConfigDir(), defaultConfig)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Initialize error reporting (opt-in)
	if err := telemetry.Init(
		cfg.TelemetryEnabled(),
		cfg.TelemetryDSN(),
		config.AppVersion,
		pl.ID(),
	); err != nil {
		log.Warn().Err(err).Msg("failed to initialize error reporting")
	}

	return cfg
}
