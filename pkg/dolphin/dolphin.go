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

// Package dolphin defines the core domain types shared by the instance
// registry, the installer and the API: emulator use types, launch variants
// and the comm file protocol used to drive running instances.
package dolphin

import "errors"

var (
	// ErrInvalidArgument is returned for malformed launch requests, such as
	// a spectate launch without an index or a config launch without a
	// variant. It is never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExecutableNotFound is returned when no usable emulator binary
	// exists for the requested variant on this platform.
	ErrExecutableNotFound = errors.New("executable not found")
)

// UseType is the purpose of a running emulator instance. It determines slot
// cardinality in the registry and how the process arguments are built.
type UseType string

const (
	UsePlayback UseType = "playback"
	UseSpectate UseType = "spectate"
	UseNetplay  UseType = "netplay"
	UseConfig   UseType = "config"
)

// Valid reports whether u is a known use type.
func (u UseType) Valid() bool {
	switch u {
	case UsePlayback, UseSpectate, UseNetplay, UseConfig:
		return true
	default:
		return false
	}
}

// UsesCommFile reports whether instances of this use type are driven through
// a comm file. Netplay and config instances take no commands after launch.
func (u UseType) UsesCommFile() bool {
	return u == UsePlayback || u == UseSpectate
}

// LaunchVariant is which build of the emulator is being managed. It is
// distinct from UseType: spectating uses the playback build, and config mode
// must state explicitly which build it is configuring.
type LaunchVariant string

const (
	VariantNetplay  LaunchVariant = "netplay"
	VariantPlayback LaunchVariant = "playback"
)

// Valid reports whether v is a known launch variant.
func (v LaunchVariant) Valid() bool {
	return v == VariantNetplay || v == VariantPlayback
}

// VariantFor returns the launch variant implied by a use type. Config mode
// has no implied variant; ok is false and the caller must supply one.
func VariantFor(u UseType) (variant LaunchVariant, ok bool) {
	switch u {
	case UseNetplay:
		return VariantNetplay, true
	case UsePlayback, UseSpectate:
		return VariantPlayback, true
	default:
		return "", false
	}
}
