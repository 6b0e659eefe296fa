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

// Package instances tracks live emulator processes. The registry is the
// only owner of instance state: it decides whether a launch request fills
// an empty slot or reuses a running process, and it is the only component
// allowed to signal or await the processes it holds.
package instances

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/SlippiLabs/dolman/pkg/api/models"
	"github.com/SlippiLabs/dolman/pkg/api/notifications"
	"github.com/SlippiLabs/dolman/pkg/dolphin"
	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/SlippiLabs/dolman/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// ErrNoInstance is returned when an operation targets a slot with no live
// instance.
var ErrNoInstance = errors.New("no such instance")

// slotKey identifies one registry slot. Only the fields that matter for
// the use type are set: variant for config slots, index for spectate
// slots. Everything else is a bare singleton key.
type slotKey struct {
	use     dolphin.UseType
	variant dolphin.LaunchVariant
	index   int
}

func (k slotKey) String() string {
	switch k.use {
	case dolphin.UseSpectate:
		return fmt.Sprintf("%s[%d]", k.use, k.index)
	case dolphin.UseConfig:
		return fmt.Sprintf("%s/%s", k.use, k.variant)
	default:
		return string(k.use)
	}
}

// instance is one spawned emulator process. The process handle is owned
// exclusively by the registry.
type instance struct {
	started  time.Time
	proc     helpers.ProcessHandle
	useType  dolphin.UseType
	variant  dolphin.LaunchVariant
	commFile string
	index    int
}

func (i *instance) info() models.InstanceInfo {
	info := models.InstanceInfo{
		UseType:   string(i.useType),
		Variant:   string(i.variant),
		CommFile:  i.commFile,
		PID:       i.proc.Pid(),
		StartedAt: i.started,
	}
	if i.useType == dolphin.UseSpectate {
		idx := i.index
		info.Index = &idx
	}
	return info
}

// LaunchOptions describe one launch request.
type LaunchOptions struct {
	// Payload, if set, is written to the instance's comm file. For a
	// reused instance this overwrites whatever was there before: last
	// write wins, there is no queue of pending payloads.
	Payload *dolphin.CommPayload
	// Index selects which broadcast a spectate instance follows.
	// Mandatory for spectate, ignored otherwise.
	Index *int
	// ISOPath, if set, boots the emulator directly into the disc image.
	ISOPath string
	// Variant picks which emulator build a config instance opens.
	// Mandatory for config, derived from the use type otherwise.
	Variant dolphin.LaunchVariant
	UseType dolphin.UseType
}

// Registry coordinates all live emulator instances.
//
// LOCKING RULES: mu protects the slot map. Slot lookup, comm file
// creation and writes, process spawn and slot insertion all happen under
// one hold of mu, so two racing launches for the same slot cannot both
// see it empty, and a launch can never observe a comm file that exit
// cleanup already deleted. Notifications are sent after unlocking.
type Registry struct {
	launcher      *Launcher
	slots         map[slotKey]*instance
	Notifications chan<- models.Notification
	mu            syncutil.Mutex
}

// NewRegistry returns a registry plus the receive side of its notification
// channel. The channel must be drained or lifecycle events will
// eventually block launches.
func NewRegistry(launcher *Launcher) (*Registry, <-chan models.Notification) {
	// Headroom for bursts of lifecycle events while the API broadcaster
	// catches up.
	ns := make(chan models.Notification, 128)
	return &Registry{
		launcher:      launcher,
		slots:         make(map[slotKey]*instance),
		Notifications: ns,
	}, ns
}

// resolveSlot validates a request's use type, index and variant and maps
// them to a slot key and the launch variant that serves the slot.
func resolveSlot(
	useType dolphin.UseType, variant dolphin.LaunchVariant, index *int,
) (slotKey, dolphin.LaunchVariant, error) {
	if !useType.Valid() {
		return slotKey{}, "", fmt.Errorf("%w: unknown use type %q",
			dolphin.ErrInvalidArgument, string(useType))
	}

	switch useType {
	case dolphin.UseSpectate:
		if index == nil || *index < 0 {
			return slotKey{}, "", fmt.Errorf("%w: spectate requires a non-negative index",
				dolphin.ErrInvalidArgument)
		}
		return slotKey{use: useType, index: *index}, dolphin.VariantPlayback, nil
	case dolphin.UseConfig:
		if !variant.Valid() {
			return slotKey{}, "", fmt.Errorf("%w: must define a launch variant for configuration",
				dolphin.ErrInvalidArgument)
		}
		return slotKey{use: useType, variant: variant}, variant, nil
	default:
		variant, _ = dolphin.VariantFor(useType)
		return slotKey{use: useType}, variant, nil
	}
}

// Launch starts an emulator instance for the requested slot, or reuses
// the one already running there. For use types that communicate through a
// comm file, a supplied payload is written to the file either way, so a
// running instance can be pointed at a new replay without a restart.
func (r *Registry) Launch(opts LaunchOptions) (models.InstanceInfo, error) {
	key, variant, err := resolveSlot(opts.UseType, opts.Variant, opts.Index)
	if err != nil {
		return models.InstanceInfo{}, err
	}

	r.mu.Lock()

	if inst, ok := r.slots[key]; ok {
		// Occupied slot: the running process is reused as-is. Liveness
		// is not probed here; a dead process frees its slot through the
		// exit path and nothing else.
		if opts.Payload != nil && inst.commFile != "" {
			if err := dolphin.WriteCommFile(inst.commFile, opts.Payload); err != nil {
				r.mu.Unlock()
				return models.InstanceInfo{}, err
			}
		}
		info := inst.info()
		r.mu.Unlock()
		log.Debug().Msgf("reusing emulator instance: %s", key)
		return info, nil
	}

	commFile := ""
	if opts.UseType.UsesCommFile() {
		commFile, err = dolphin.NewCommFile(opts.UseType)
		if err != nil {
			r.mu.Unlock()
			return models.InstanceInfo{}, err
		}
		if opts.Payload != nil {
			if err := dolphin.WriteCommFile(commFile, opts.Payload); err != nil {
				r.mu.Unlock()
				removeCommFile(commFile)
				return models.InstanceInfo{}, err
			}
		}
	}

	var extraArgs []string
	if opts.ISOPath != "" {
		extraArgs = BootISOArgs(opts.ISOPath)
	}

	proc, err := r.launcher.Start(variant, commFile, extraArgs...)
	if err != nil {
		r.mu.Unlock()
		if commFile != "" {
			removeCommFile(commFile)
		}
		return models.InstanceInfo{}, err
	}

	inst := &instance{
		started:  time.Now(),
		proc:     proc,
		useType:  opts.UseType,
		variant:  variant,
		commFile: commFile,
		index:    key.index,
	}
	r.slots[key] = inst
	info := inst.info()

	r.mu.Unlock()

	go r.watch(key, inst)

	log.Info().Msgf("started emulator instance: %s (pid %d)", key, info.PID)
	notifications.InstanceStarted(r.Notifications, info)
	return info, nil
}

// watch blocks until the instance's process exits, then runs cleanup.
// This is the only path that ever removes an instance from its slot.
func (r *Registry) watch(key slotKey, inst *instance) {
	if err := inst.proc.Wait(); err != nil {
		log.Debug().Err(err).Msgf("emulator process finished: %s", key)
	}
	r.handleExit(key, inst)
}

// handleExit removes an exited instance from the registry and deletes its
// comm file. The identity check keeps a late exit notification from
// clearing a replacement instance that has since claimed the same slot.
func (r *Registry) handleExit(key slotKey, inst *instance) {
	r.mu.Lock()
	cur, ok := r.slots[key]
	if !ok || cur != inst {
		r.mu.Unlock()
		return
	}
	delete(r.slots, key)
	if inst.commFile != "" {
		removeCommFile(inst.commFile)
	}
	info := inst.info()
	r.mu.Unlock()

	log.Info().Msgf("emulator instance exited: %s (pid %d)", key, info.PID)
	notifications.InstanceExited(r.Notifications, info)
}

func removeCommFile(path string) {
	if err := dolphin.RemoveCommFile(path); err != nil {
		log.Warn().Err(err).Msgf("failed to remove comm file: %s", path)
	}
}

// Kill force-stops the instance in a slot. The slot itself is freed by
// the normal exit path once the process is gone, not by Kill.
func (r *Registry) Kill(useType dolphin.UseType, variant dolphin.LaunchVariant, index *int) error {
	key, _, err := resolveSlot(useType, variant, index)
	if err != nil {
		return err
	}

	r.mu.Lock()
	inst, ok := r.slots[key]
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoInstance, key)
	}

	if err := inst.proc.Signal(os.Kill); err != nil {
		return fmt.Errorf("failed to signal emulator process: %w", err)
	}
	return nil
}

// Instances returns a snapshot of all live instances, oldest first.
func (r *Registry) Instances() []models.InstanceInfo {
	r.mu.Lock()
	out := make([]models.InstanceInfo, 0, len(r.slots))
	for _, inst := range r.slots {
		out = append(out, inst.info())
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].PID < out[j].PID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
