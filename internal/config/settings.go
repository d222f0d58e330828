// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"gopkg.in/ini.v1"

	"github.com/MKhiriev/mdiary/models"
)

const (
	settingsSection = "settings"
	keyDB           = "db"

	archiveSuffix = ".old"
)

// LoadSettings reads the settings file at path. A missing file yields
// [ErrConfigurationMissing].
func LoadSettings(path string) (models.Settings, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return models.Settings{}, ErrConfigurationMissing
	}

	file, err := ini.Load(path)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	if !file.HasSection(settingsSection) {
		return models.Settings{}, fmt.Errorf("%w: no [%s] section in %s", ErrInvalidSettings, settingsSection, path)
	}
	section := file.Section(settingsSection)

	var settings models.Settings
	if err = section.StrictMapTo(&settings); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	if _, err = ValidateDiaryName(settings.DB); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %s: %w", ErrInvalidSettings, keyDB, err)
	}

	return settings, nil
}

// SaveSettings atomically writes s to path, creating the parent directory.
func SaveSettings(path string, s models.Settings) error {
	file := ini.Empty()
	section, err := file.NewSection(settingsSection)
	if err != nil {
		return fmt.Errorf("error building settings: %w", err)
	}
	if err = section.ReflectFrom(&s); err != nil {
		return fmt.Errorf("error building settings: %w", err)
	}

	var buf bytes.Buffer
	if _, err = file.WriteTo(&buf); err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	if err = renameio.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("error writing settings file: %w", err)
	}

	return nil
}

// ResetSettings moves the settings file at path out of the way so the next
// start runs first-run setup again. The file is renamed to the first free
// name among "<path>.old", "<path>.old.old", and so on; earlier archives are
// kept. It returns the archive path, or "" when there was nothing to reset.
// Store and key files are not touched.
func ResetSettings(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("error checking settings file: %w", err)
	}

	archived := path + archiveSuffix
	for {
		_, err := os.Stat(archived)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("error checking archive %s: %w", archived, err)
		}
		archived += archiveSuffix
	}

	if err := os.Rename(path, archived); err != nil {
		return "", fmt.Errorf("error archiving settings file: %w", err)
	}

	return archived, nil
}
