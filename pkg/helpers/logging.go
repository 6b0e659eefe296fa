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
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is the name of the rotating service log inside the log directory.
const LogFile = "dolman.log"

var baseLogWriter io.Writer = os.Stderr

// LogWriter returns the writer InitLogging configured, so other packages
// can rebuild the global logger with extra sinks without losing the file
// output.
func LogWriter() io.Writer {
	return baseLogWriter
}

// InitLogging configures the global zerolog logger with a rotating file in
// logDir plus any extra writers (e.g. stderr when running in the
// foreground).
func InitLogging(logDir string, writers []io.Writer) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return err //nolint:wrapcheck // caller adds context
	}

	logWriters := []io.Writer{&lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFile),
		MaxSize:    1,
		MaxBackups: 2,
	}}
	logWriters = append(logWriters, writers...)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	baseLogWriter = io.MultiWriter(logWriters...)
	log.Logger = log.Output(baseLogWriter).
		With().Timestamp().Caller().Logger()

	return nil
}
