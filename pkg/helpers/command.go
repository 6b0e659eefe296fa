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

package helpers

import (
	"context"
	"os"
	"os/exec"
)

// ProcessHandle is the registry's view of a spawned emulator process. Wait
// blocks until the process exits and must be called exactly once; Signal can
// be used to request termination but never to reap.
type ProcessHandle interface {
	Pid() int
	Signal(sig os.Signal) error
	Wait() error
}

// CommandStarter spawns long-lived processes without waiting for them to
// become ready. This allows process creation to be mocked in tests without
// launching real emulators.
type CommandStarter interface {
	// Start launches a command asynchronously and returns a handle to it.
	// Returns an error only if the process could not be created.
	Start(name string, args ...string) (ProcessHandle, error)
}

// CommandRunner runs short-lived commands and captures their output. It
// exists for the installed-version probe, which is a bounded blocking call.
type CommandRunner interface {
	// Output runs a command to completion and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecStarter uses os/exec to start real system processes. This is the
// production implementation used in normal operation.
type ExecStarter struct{}

// Start launches a command via exec.Cmd.Start.
func (*ExecStarter) Start(name string, args ...string) (ProcessHandle, error) {
	cmd := exec.Command(name, args...) //nolint:gosec // executable path is resolved by the platform strategy
	if err := cmd.Start(); err != nil {
		//nolint:wrapcheck // wrapping exec errors loses important context
		return nil, err
	}
	return &execHandle{cmd: cmd}, nil
}

type execHandle struct {
	cmd *exec.Cmd
}

func (h *execHandle) Pid() int {
	return h.cmd.Process.Pid
}

//nolint:wrapcheck // signal errors are checked with errors.Is by callers
func (h *execHandle) Signal(sig os.Signal) error {
	return h.cmd.Process.Signal(sig)
}

//nolint:wrapcheck // exit errors are inspected as *exec.ExitError by callers
func (h *execHandle) Wait() error {
	return h.cmd.Wait()
}

// ExecRunner uses exec.CommandContext to run real system commands.
type ExecRunner struct{}

// Output runs a command and captures stdout.
//
//nolint:wrapcheck // wrapping exec errors loses important context
func (*ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output() //nolint:gosec // executable path is resolved by the platform strategy
}
