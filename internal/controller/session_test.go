// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package controller

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/mdiary/internal/config"
	"github.com/MKhiriev/mdiary/internal/crypto"
	"github.com/MKhiriev/mdiary/internal/logger"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()
	return &config.Paths{
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
		KeyDir:    filepath.Join(root, "keys"),
		LogLevel:  "debug",
	}
}

func openSession(t *testing.T, paths *config.Paths) *Controller {
	t.Helper()
	c, err := Open(context.Background(), paths, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSession_FirstRunStartsInInit(t *testing.T) {
	c := openSession(t, testPaths(t))

	assert.Equal(t, ViewInit, c.View().Kind)
	_, err := c.ListEntries(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSession_PlainDiaryAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)

	c := openSession(t, paths)
	require.NoError(t, c.Initialize(ctx, "journal", false))
	assert.Equal(t, ViewMenu, c.View().Kind)

	for _, text := range []string{"a", "b", "c"} {
		_, err := c.NewEntry(ctx, text)
		require.NoError(t, err)
	}

	entries, err := c.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, int64(i+1), entries[i].ID)
		assert.Equal(t, want, entries[i].Text)
	}

	// nothing was encrypted
	_, err = os.Stat(paths.DefaultKeyPath("journal"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSession_EncryptedDiarySurvivesRestart(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)

	first, err := Open(ctx, paths, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, first.Initialize(ctx, "secret-diary", true))

	created, err := first.NewEntry(ctx, "the secret")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// on disk the entry is an opaque token
	raw, err := os.ReadFile(paths.StoreFile(first.Settings()))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "the secret"))

	second := openSession(t, paths)
	require.Equal(t, ViewMenu, second.View().Kind)
	assert.True(t, second.Settings().UsingKey)

	got, err := second.LoadEntry(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "the secret", got.Text)
}

func TestSession_MissingKeyIsFatal(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)

	c, err := Open(ctx, paths, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Initialize(ctx, "journal", true))
	require.NoError(t, c.Close())

	require.NoError(t, os.Remove(paths.DefaultKeyPath("journal")))

	_, err = Open(ctx, paths, logger.Nop())
	require.ErrorIs(t, err, crypto.ErrKeyUnavailable)
}

func TestSession_ExplicitKeyFile(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)

	c, err := Open(ctx, paths, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Initialize(ctx, "journal", true))
	_, err = c.NewEntry(ctx, "hidden")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	moved := filepath.Join(t.TempDir(), "usb", "journal.key")
	require.NoError(t, os.MkdirAll(filepath.Dir(moved), 0o700))
	require.NoError(t, os.Rename(paths.DefaultKeyPath("journal"), moved))

	paths.KeyFile = moved
	reopened := openSession(t, paths)

	e, err := reopened.LoadEntry(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hidden", e.Text)
}

func TestSession_ResetReentersSetup(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)

	c, err := Open(ctx, paths, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Initialize(ctx, "journal", false))
	require.NoError(t, c.Close())

	archived, err := config.ResetSettings(paths.SettingsFile())
	require.NoError(t, err)
	assert.Equal(t, paths.SettingsFile()+".old", archived)

	again := openSession(t, paths)
	assert.Equal(t, ViewInit, again.View().Kind)
}

func TestSession_InitializeRefusesToReplaceKey(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)

	c, err := Open(ctx, paths, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Initialize(ctx, "journal", true))
	require.NoError(t, c.Close())

	_, err = config.ResetSettings(paths.SettingsFile())
	require.NoError(t, err)

	again := openSession(t, paths)
	err = again.Initialize(ctx, "journal", true)
	require.ErrorIs(t, err, crypto.ErrKeyExists)
	assert.Equal(t, ViewInit, again.View().Kind)

	// settings were not written, the next start is still in setup
	_, err = config.LoadSettings(paths.SettingsFile())
	require.ErrorIs(t, err, config.ErrConfigurationMissing)
}

func TestSession_InitializeValidatesName(t *testing.T) {
	c := openSession(t, testPaths(t))

	err := c.Initialize(context.Background(), "../escape", false)
	require.ErrorIs(t, err, config.ErrInvalidDiaryName)
	assert.Equal(t, ViewInit, c.View().Kind)
}

func TestSession_InitializeOnlyOnce(t *testing.T) {
	ctx := context.Background()
	c := openSession(t, testPaths(t))

	require.NoError(t, c.Initialize(ctx, "journal", false))
	require.ErrorIs(t, c.Initialize(ctx, "other", false), ErrAlreadyConfigured)
}

// seedAndReset creates a diary holding texts, then archives its settings
// the way --reset does, leaving the store and key files behind.
func seedAndReset(t *testing.T, paths *config.Paths, name string, usingKey bool, texts ...string) {
	t.Helper()
	ctx := context.Background()

	c, err := Open(ctx, paths, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Initialize(ctx, name, usingKey))
	for _, text := range texts {
		_, err = c.NewEntry(ctx, text)
		require.NoError(t, err)
	}
	require.NoError(t, c.Close())

	_, err = config.ResetSettings(paths.SettingsFile())
	require.NoError(t, err)
}

func TestSession_ReinitPlainDiaryWithKeyIsRefused(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	seedAndReset(t, paths, "journal", false, "hello")

	c := openSession(t, paths)
	err := c.Initialize(ctx, "journal", true)
	require.ErrorIs(t, err, ErrStoreExists)
	assert.Equal(t, ViewInit, c.View().Kind)

	_, err = config.LoadSettings(paths.SettingsFile())
	require.ErrorIs(t, err, config.ErrConfigurationMissing)
	assert.NoFileExists(t, paths.DefaultKeyPath("journal"))
}

func TestSession_ReinitEncryptedDiaryWithoutKeyIsRefused(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	seedAndReset(t, paths, "journal", true, "secret")

	c := openSession(t, paths)
	err := c.Initialize(ctx, "journal", false)
	require.ErrorIs(t, err, ErrStoreExists)
	assert.Equal(t, ViewInit, c.View().Kind)

	_, err = config.LoadSettings(paths.SettingsFile())
	require.ErrorIs(t, err, config.ErrConfigurationMissing)
}

func TestSession_ReinitEncryptedDiaryReusesItsKey(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	seedAndReset(t, paths, "journal", true, "secret")

	keyBefore, err := os.ReadFile(paths.DefaultKeyPath("journal"))
	require.NoError(t, err)

	c := openSession(t, paths)
	require.NoError(t, c.Initialize(ctx, "journal", true))
	assert.Equal(t, ViewMenu, c.View().Kind)

	entries, err := c.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "secret", entries[0].Text)

	keyAfter, err := os.ReadFile(paths.DefaultKeyPath("journal"))
	require.NoError(t, err)
	assert.Equal(t, keyBefore, keyAfter)
}

func TestSession_ReinitEncryptedDiaryWithLostKeyIsRefused(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	seedAndReset(t, paths, "journal", true, "secret")
	require.NoError(t, os.Remove(paths.DefaultKeyPath("journal")))

	c := openSession(t, paths)
	err := c.Initialize(ctx, "journal", true)
	require.ErrorIs(t, err, ErrStoreExists)
	assert.NoFileExists(t, paths.DefaultKeyPath("journal"), "no fresh key for an old store")
}

func TestSession_ReinitPlainDiaryKeepsEntries(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)
	seedAndReset(t, paths, "journal", false, "first")

	c := openSession(t, paths)
	require.NoError(t, c.Initialize(ctx, "journal", false))

	e, err := c.NewEntry(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, int64(2), e.ID)

	entries, err := c.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Text)
}

func TestSession_LogsCarryDiaryName(t *testing.T) {
	ctx := context.Background()
	paths := testPaths(t)

	var buf bytes.Buffer
	c, err := Open(ctx, paths, logger.NewLogger("test", &buf, zerolog.InfoLevel))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Initialize(ctx, "journal", false))
	assert.Contains(t, buf.String(), `"diary":"journal"`)
}
