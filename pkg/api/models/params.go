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

package models

import "github.com/SlippiLabs/dolman/pkg/dolphin"

type LaunchParams struct {
	Index   *int                 `json:"index" validate:"omitempty,min=0"`
	Variant *string              `json:"variant" validate:"omitempty,oneof=netplay playback"`
	ISOPath *string              `json:"isoPath"`
	Payload *dolphin.CommPayload `json:"payload"`
	UseType string               `json:"useType" validate:"required,oneof=playback spectate netplay config"`
}

type KillParams struct {
	Index   *int    `json:"index" validate:"omitempty,min=0"`
	Variant *string `json:"variant" validate:"omitempty,oneof=netplay playback"`
	UseType string  `json:"useType" validate:"required,oneof=playback spectate netplay config"`
}

type InstallValidateParams struct {
	Variant string `json:"variant" validate:"required,oneof=netplay playback"`
}

type InstallUpdateParams struct {
	Variant string `json:"variant" validate:"required,oneof=netplay playback"`
	Clean   bool   `json:"clean"`
}

type AddGamePathParams struct {
	Variant string `json:"variant" validate:"required,oneof=netplay playback"`
	Path    string `json:"path" validate:"required"`
}

type ImportConfigParams struct {
	Variant  string `json:"variant" validate:"required,oneof=netplay playback"`
	FromPath string `json:"fromPath" validate:"required"`
}

type ClearCacheParams struct {
	Variant string `json:"variant" validate:"required,oneof=netplay playback"`
}

type UpdateSettingsParams struct {
	ISOPath           *string `json:"isoPath"`
	InstallDir        *string `json:"installDir"`
	ReplayDir         *string `json:"replayDir"`
	MonthlySubfolders *bool   `json:"monthlySubfolders"`
}

type HistoryParams struct {
	Limit *int `json:"limit" validate:"omitempty,min=1,max=1000"`
}
