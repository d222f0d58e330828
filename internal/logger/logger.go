// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout mdiary.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
// The terminal belongs to the UI, so the application logger never writes to
// stdout: it appends JSON lines to a log file instead.
package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a *Logger for the given role label writing JSON lines
// to w at the given level. Every line carries:
//   - a "role" field set to role;
//   - a "session_id" field unique to this process run;
//   - a "ts" timestamp;
//   - a "func" caller field holding the fully-qualified function name.
func NewLogger(role string, w io.Writer, level zerolog.Level) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"
	zerolog.TimestampFieldName = "ts"

	logger := zerolog.New(w).Level(level).With().
		Str("role", role).
		Str("session_id", uuid.NewString()).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewFileLogger is [NewLogger] writing to the file at logPath, which is
// created with its directory if needed. levelName is parsed with
// zerolog.ParseLevel; an unknown name falls back to info. When the file
// cannot be opened the logger discards its output.
//
// The returned close function releases the file and is always non-nil.
func NewFileLogger(role, logPath, levelName string) (*Logger, func() error) {
	level, err := zerolog.ParseLevel(levelName)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = io.Discard
	closeFn := func() error { return nil }

	if mkErr := os.MkdirAll(filepath.Dir(logPath), 0o700); mkErr == nil {
		logFile, openErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if openErr == nil {
			out = logFile
			closeFn = logFile.Close
		}
	}

	return NewLogger(role, out, level), closeFn
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests and other contexts where logging is
// undesirable or would produce noise.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver. The child logger can be enriched with additional context fields
// without affecting the parent logger.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// WithContext returns a copy of ctx carrying the logger, so that callees can
// recover it with [FromContext].
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default context
// logger (disabled unless configured), so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
