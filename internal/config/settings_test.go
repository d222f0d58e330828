// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mdiary/models"
)

func TestLoadSettings_Missing(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), SettingsFileName))
	require.ErrorIs(t, err, ErrConfigurationMissing)
}

func TestSaveSettings_LoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsFileName)
	want := models.NewSettings("journal", true)

	require.NoError(t, SaveSettings(path, want))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveSettings_WritesTaggedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, SaveSettings(path, models.NewSettings("journal", false)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[settings]")
	assert.Regexp(t, `(?m)^db\s*=\s*journal\.db$`, string(raw))
	assert.Regexp(t, `(?m)^using_key\s*=\s*false$`, string(raw))
}

func TestLoadSettings_ClassicFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	content := "[settings]\ndb = journal.db\nusing_key = True\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "journal.db", got.DB)
	assert.Equal(t, "journal", got.Name())
	assert.True(t, got.UsingKey)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := map[string]string{
		"no section":     "db = journal.db\n",
		"empty db":       "[settings]\ndb =\n",
		"bad bool":       "[settings]\ndb = journal.db\nusing_key = maybe\n",
		"path traversal": "[settings]\ndb = ../journal.db\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsFileName)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			_, err := LoadSettings(path)
			require.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestResetSettings_NothingToReset(t *testing.T) {
	archived, err := ResetSettings(filepath.Join(t.TempDir(), SettingsFileName))
	require.NoError(t, err)
	assert.Empty(t, archived)
}

func TestResetSettings_ChainsArchives(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, SettingsFileName)

	require.NoError(t, SaveSettings(path, models.NewSettings("first", false)))
	archived, err := ResetSettings(path)
	require.NoError(t, err)
	assert.Equal(t, path+".old", archived)

	_, err = LoadSettings(path)
	require.ErrorIs(t, err, ErrConfigurationMissing)

	require.NoError(t, SaveSettings(path, models.NewSettings("second", true)))
	archived, err = ResetSettings(path)
	require.NoError(t, err)
	assert.Equal(t, path+".old.old", archived)

	first, err := LoadSettings(path + ".old")
	require.NoError(t, err)
	assert.Equal(t, "first.db", first.DB)

	second, err := LoadSettings(path + ".old.old")
	require.NoError(t, err)
	assert.Equal(t, "second.db", second.DB)
	assert.True(t, second.UsingKey)
}
