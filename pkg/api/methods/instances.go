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

package methods

import (
	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/api/models/requests"
	"github.com/SlippiLabs/dolman/pkg/api/validation"
	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/instances"
	"github.com/rs/zerolog/log"
)

//nolint:gocritic // single-use parameter in API handler
func HandleInstancesLaunch(env requests.RequestEnv) (any, error) {
	log.Info().Msg("received instances launch request")

	var params models.LaunchParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	useType := dolphin.UseType(params.UseType)

	opts := instances.LaunchOptions{
		UseType: useType,
		Index:   params.Index,
		Payload: params.Payload,
	}
	if params.Variant != nil {
		opts.Variant = dolphin.LaunchVariant(*params.Variant)
	}

	switch {
	case params.ISOPath != nil:
		opts.ISOPath = *params.ISOPath
	case useType != dolphin.UseConfig:
		// Config mode opens the emulator's settings UI, so a disc image
		// would only get in the way. Every other use type boots into the
		// configured game when one is set.
		opts.ISOPath = env.Config.ISOPath()
	}

	info, err := env.Registry.Launch(opts)
	if err != nil {
		return nil, err
	}
	return info, nil
}

func HandleInstances(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received instances request")

	return models.InstancesResponse{
		Instances: env.Registry.Instances(),
	}, nil
}

func HandleInstancesKill(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received instances kill request")

	var params models.KillParams
	if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
		return nil, err
	}

	var variant dolphin.LaunchVariant
	if params.Variant != nil {
		variant = dolphin.LaunchVariant(*params.Variant)
	}

	err := env.Registry.Kill(dolphin.UseType(params.UseType), variant, params.Index)
	if err != nil {
		return nil, err
	}
	return NoContent{}, nil
}
