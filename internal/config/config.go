// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"

	"github.com/MKhiriev/mdiary/models"
)

const (
	appName = "mdiary"

	// SettingsFileName is the name of the settings file inside ConfigDir.
	SettingsFileName = "mdiary.conf"

	// LogFileName is the name of the log file inside DataDir.
	LogFileName = "mdiary.log"

	keyFileExt = ".key"
)

// Paths tells the application where its files live.
//
// Struct tags:
//   - env: environment variable name, looked up with the MDIARY_ prefix.
type Paths struct {
	// ConfigDir holds the settings file.
	// Env: MDIARY_CONFIG_DIR
	ConfigDir string `env:"CONFIG_DIR"`

	// DataDir holds the store files and the log file.
	// Env: MDIARY_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// KeyDir is where freshly generated keys are written.
	// Env: MDIARY_KEY_DIR
	KeyDir string `env:"KEY_DIR"`

	// KeyFile, when set, is the key used to open an encrypted diary. It takes
	// precedence over the file derived from KeyDir.
	// Env: MDIARY_KEY_FILE
	KeyFile string `env:"KEY_FILE"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: MDIARY_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// SettingsFile is the absolute path of the settings file.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.ConfigDir, SettingsFileName)
}

// StoreFile is the absolute path of the store named in s.
func (p *Paths) StoreFile(s models.Settings) string {
	return filepath.Join(p.DataDir, s.DB)
}

// LogFile is the absolute path of the log file.
func (p *Paths) LogFile() string {
	return filepath.Join(p.DataDir, LogFileName)
}

// KeyPath is the key file for the diary called name: KeyFile when it was
// given explicitly, "<KeyDir>/<name>.key" otherwise.
func (p *Paths) KeyPath(name string) string {
	if p.KeyFile != "" {
		return p.KeyFile
	}
	return p.DefaultKeyPath(name)
}

// DefaultKeyPath is "<KeyDir>/<name>.key".
func (p *Paths) DefaultKeyPath(name string) string {
	return filepath.Join(p.KeyDir, name+keyFileExt)
}

// GetPaths loads, merges and validates [Paths].
//
// flags carries the values given on the command line; zero fields are
// ignored. Returned paths are absolute with "~/" expanded.
func GetPaths(flags Paths) (*Paths, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(flags).
		build()
}
