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
	"errors"

	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/api/models/requests"
	"github.com/SlippiLabs/dolman/pkg/api/validation"
	"github.com/rs/zerolog/log"
)

func HandleHistory(env requests.RequestEnv) (any, error) { //nolint:gocritic // single-use parameter in API handler
	log.Info().Msg("received history request")

	limit := 0
	if len(env.Params) > 0 {
		var params models.HistoryParams
		if err := validation.ValidateAndUnmarshal(env.Params, &params); err != nil {
			return nil, err
		}
		if params.Limit != nil {
			limit = *params.Limit
		}
	}

	events, err := env.History.Events(limit)
	if err != nil {
		log.Error().Err(err).Msgf("error getting history")
		return nil, errors.New("error getting history")
	}

	resp := models.HistoryResponse{
		Entries: make([]models.HistoryResponseEntry, len(events)),
	}
	for i, e := range events {
		resp.Entries[i] = models.HistoryResponseEntry{
			Time:    e.Time,
			Index:   e.Index,
			Type:    e.Type,
			UseType: e.UseType,
			Variant: e.Variant,
			PID:     e.PID,
		}
	}
	return resp, nil
}
