// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks that the merged [Paths] can be used at startup.
func (p *Paths) validate() error {
	if p.ConfigDir == "" || p.DataDir == "" || p.KeyDir == "" {
		return fmt.Errorf("%w: config, data and key directories are required", ErrInvalidPaths)
	}

	if _, err := zerolog.ParseLevel(p.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q: %w", ErrInvalidPaths, p.LogLevel, err)
	}

	return nil
}

// ValidateDiaryName returns the trimmed name, or [ErrInvalidDiaryName] when
// it is empty or contains path elements.
func ValidateDiaryName(name string) (string, error) {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return "", fmt.Errorf("%w: name is empty", ErrInvalidDiaryName)
	case name == "." || name == "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidDiaryName, name)
	case strings.ContainsAny(name, `/\`) || filepath.Base(name) != name:
		return "", fmt.Errorf("%w: %q must not contain path separators", ErrInvalidDiaryName, name)
	}

	return name, nil
}
