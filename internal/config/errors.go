// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

var (
	// ErrConfigurationMissing is returned by [LoadSettings] when no settings
	// file exists yet. It is not a failure: the caller starts first-run setup.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrInvalidSettings is returned when the settings file exists but lacks
	// a usable "[settings]" section.
	ErrInvalidSettings = errors.New("invalid settings file")

	// ErrInvalidDiaryName is returned for diary names that are empty or would
	// escape their directory.
	ErrInvalidDiaryName = errors.New("invalid diary name")

	// ErrInvalidPaths indicates that a required directory is unset or the
	// log level is unknown.
	ErrInvalidPaths = errors.New("invalid paths configuration")
)
