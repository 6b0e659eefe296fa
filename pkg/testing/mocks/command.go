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

// Package mocks holds test doubles for process and platform boundaries.
package mocks

import (
	"context"
	"os"
	"sync"

	"github.com/SlippiLabs/dolman/pkg/helpers"
	"github.com/stretchr/testify/mock"
)

// FakeProcess implements helpers.ProcessHandle with an exit the test
// controls. Signalling it with os.Kill exits it, like a real process.
type FakeProcess struct {
	exited  chan struct{}
	waitErr error
	signals []os.Signal
	pid     int
	mu      sync.Mutex
	once    sync.Once
}

// NewFakeProcess returns a fake running process with the given pid.
func NewFakeProcess(pid int) *FakeProcess {
	return &FakeProcess{
		pid:    pid,
		exited: make(chan struct{}),
	}
}

func (p *FakeProcess) Pid() int {
	return p.pid
}

func (p *FakeProcess) Signal(sig os.Signal) error {
	p.mu.Lock()
	p.signals = append(p.signals, sig)
	p.mu.Unlock()

	if sig == os.Kill {
		p.Exit(nil)
	}
	return nil
}

// Wait blocks until Exit is called, then returns the error given to Exit.
func (p *FakeProcess) Wait() error {
	<-p.exited
	return p.waitErr
}

// Exit makes the process appear to have terminated. Safe to call more than
// once.
func (p *FakeProcess) Exit(err error) {
	p.once.Do(func() {
		p.waitErr = err
		close(p.exited)
	})
}

// Signals returns a copy of every signal the process has received.
func (p *FakeProcess) Signals() []os.Signal {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]os.Signal, len(p.signals))
	copy(out, p.signals)
	return out
}

// MockCommandStarter is a testify mock for helpers.CommandStarter.
//
// Example:
//
//	proc := mocks.NewFakeProcess(100)
//	starter := &mocks.MockCommandStarter{}
//	starter.On("Start", exePath, mock.Anything).Return(proc, nil).Once()
type MockCommandStarter struct {
	mock.Mock
}

func (m *MockCommandStarter) Start(name string, args ...string) (helpers.ProcessHandle, error) {
	called := m.Called(name, args)
	proc, _ := called.Get(0).(helpers.ProcessHandle)
	//nolint:wrapcheck // mock returns configured error as-is
	return proc, called.Error(1)
}

// MockCommandRunner is a testify mock for helpers.CommandRunner.
type MockCommandRunner struct {
	mock.Mock
}

func (m *MockCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	called := m.Called(ctx, name, args)
	out, _ := called.Get(0).([]byte)
	//nolint:wrapcheck // mock returns configured error as-is
	return out, called.Error(1)
}
