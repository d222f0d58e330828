// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const defaultLogLevel = "info"

// defaultPaths mirrors the classic layout: settings in ~/.config/mdiary, keys
// in ~/.mdiary, and store files in the platform data directory.
func defaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	return &Paths{
		ConfigDir: filepath.Join(home, ".config", appName),
		DataDir:   defaultDataDir(home),
		KeyDir:    filepath.Join(home, "."+appName),
		LogLevel:  defaultLogLevel,
	}, nil
}

func defaultDataDir(home string) string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", appName)
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	default: // Linux and other UNIX-like systems.
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		return filepath.Join(home, ".local", "share", appName)
	}
}

// expandPath turns "~/x" into "<home>/x" and makes the result absolute.
// Empty input stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", path, err)
	}

	return abs, nil
}

func (p *Paths) resolve() error {
	for _, field := range []*string{&p.ConfigDir, &p.DataDir, &p.KeyDir, &p.KeyFile} {
		resolved, err := expandPath(*field)
		if err != nil {
			return err
		}
		*field = resolved
	}
	p.LogLevel = strings.ToLower(strings.TrimSpace(p.LogLevel))

	return nil
}
