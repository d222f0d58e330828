// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package controller

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/mdiary/internal/config"
	"github.com/MKhiriev/mdiary/internal/crypto"
	"github.com/MKhiriev/mdiary/internal/logger"
	"github.com/MKhiriev/mdiary/internal/store"
	"github.com/MKhiriev/mdiary/models"
)

// Open starts a session from the files under paths.
//
// Without a settings file the session starts in [ViewInit] and waits for
// [Controller.Initialize]. Otherwise the key is loaded when the diary uses
// one, the store is opened and the session starts in [ViewMenu]. A
// configured but missing key is an error wrapping
// [crypto.ErrKeyUnavailable]; no session is returned.
func Open(ctx context.Context, paths *config.Paths, log *logger.Logger) (*Controller, error) {
	c := &Controller{
		paths:  paths,
		view:   View{Kind: ViewInit},
		logger: log,
	}

	settings, err := config.LoadSettings(paths.SettingsFile())
	if errors.Is(err, config.ErrConfigurationMissing) {
		log.Info().Str("func", "controller.Open").Str("settings", paths.SettingsFile()).Msg("no settings found, starting first-run setup")
		return c, nil
	}
	if err != nil {
		log.Err(err).Str("func", "controller.Open").Msg("failed to load settings")
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err = c.attach(ctx, settings); err != nil {
		return nil, err
	}
	c.view = View{Kind: ViewMenu}

	return c, nil
}

// storeState describes what an existing store file already holds.
type storeState int

const (
	// storeEmpty: no file, or a file without entries.
	storeEmpty storeState = iota
	// storePlain: entries are plaintext.
	storePlain
	// storeSealed: entries open with the key at the diary's key path.
	storeSealed
	// storeSealedElsewhere: entries are tokens the key at hand cannot open.
	storeSealedElsewhere
)

func (s storeState) String() string {
	switch s {
	case storePlain:
		return "plaintext"
	case storeSealed, storeSealedElsewhere:
		return "encrypted"
	default:
		return "no"
	}
}

// Initialize performs first-run setup and moves the session to [ViewMenu].
//
// When usingKey is set a fresh key is generated and written to the key path
// for name before anything else; the settings file is written only after
// that, so a failure leaves the next start in setup again.
//
// A store left behind by an earlier setup under the same name is reopened
// only when it matches: an encrypted store whose key is still at the key
// path is reused with that key, a plaintext store is reused without one.
// Any other combination fails with [ErrStoreExists] and writes nothing.
func (c *Controller) Initialize(ctx context.Context, name string, usingKey bool) error {
	if c.view.Kind != ViewInit {
		return ErrAlreadyConfigured
	}

	name, err := config.ValidateDiaryName(name)
	if err != nil {
		return err
	}
	settings := models.NewSettings(name, usingKey)

	state, err := c.inspectStore(ctx, settings)
	if err != nil {
		return err
	}

	reuseKey := false
	switch {
	case state == storeEmpty:
	case state == storePlain && !usingKey:
	case state == storeSealed && usingKey:
		reuseKey = true
	default:
		c.logger.Warn().
			Str("func", "Controller.Initialize").
			Str("db", settings.DB).
			Stringer("found", state).
			Bool("using_key", usingKey).
			Msg("existing store does not match the requested setup")
		return fmt.Errorf("%w: %s holds %s entries", ErrStoreExists, settings.DB, state)
	}

	if usingKey && !reuseKey {
		keyPath := c.paths.KeyPath(name)
		key, genErr := crypto.GenerateKey()
		if genErr != nil {
			return fmt.Errorf("generate key: %w", genErr)
		}
		if err = crypto.SaveKey(keyPath, key); err != nil {
			c.logger.Err(err).Str("func", "Controller.Initialize").Str("key_path", keyPath).Msg("failed to save key")
			return fmt.Errorf("save key: %w", err)
		}
		c.logger.Info().Str("func", "Controller.Initialize").Str("key_path", keyPath).Msg("key generated")
	}

	if err = config.SaveSettings(c.paths.SettingsFile(), settings); err != nil {
		c.logger.Err(err).Str("func", "Controller.Initialize").Msg("failed to save settings")
		return fmt.Errorf("save settings: %w", err)
	}

	if err = c.attach(ctx, settings); err != nil {
		return err
	}

	_, err = c.Dispatch(On(IntentConfigured))
	return err
}

// inspectStore looks into the store file settings would open without
// creating it.
func (c *Controller) inspectStore(ctx context.Context, settings models.Settings) (storeState, error) {
	path := c.paths.StoreFile(settings)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return storeEmpty, nil
	} else if err != nil {
		return storeEmpty, fmt.Errorf("%w: %w", store.ErrStorage, err)
	}

	db, err := store.NewConnectSQLite(ctx, path, c.logger)
	if err != nil {
		return storeEmpty, fmt.Errorf("open store: %w", err)
	}
	repo := store.NewEntryRepository(db, c.logger)
	defer repo.Close()

	entries, err := repo.List(ctx)
	if err != nil {
		return storeEmpty, fmt.Errorf("read store: %w", err)
	}
	if len(entries) == 0 {
		return storeEmpty, nil
	}

	sample := entries[0].Text
	if key, keyErr := crypto.LoadKey(c.paths.KeyPath(settings.Name())); keyErr == nil {
		if cipher, cipherErr := crypto.NewCipher(key); cipherErr == nil {
			if _, openErr := cipher.Decrypt(sample); openErr == nil {
				return storeSealed, nil
			}
		}
	}
	if crypto.IsToken(sample) {
		return storeSealedElsewhere, nil
	}

	return storePlain, nil
}

// KeyPath is where the key of the diary called name is (or would be) kept.
func (c *Controller) KeyPath(name string) string {
	return c.paths.KeyPath(name)
}

// attach loads the key if needed and opens the store named in settings.
func (c *Controller) attach(ctx context.Context, settings models.Settings) error {
	var cipher crypto.Cipher

	if settings.UsingKey {
		keyPath := c.paths.KeyPath(settings.Name())
		key, err := crypto.LoadKey(keyPath)
		if err != nil {
			c.logger.Err(err).Str("func", "Controller.attach").Str("key_path", keyPath).Msg("failed to load key")
			return fmt.Errorf("load key: %w", err)
		}
		if cipher, err = crypto.NewCipher(key); err != nil {
			return fmt.Errorf("load key: %w", err)
		}
	}

	log := c.logger.GetChildLogger()
	log.UpdateContext(func(zc zerolog.Context) zerolog.Context {
		return zc.Str("diary", settings.Name())
	})

	db, err := store.NewConnectSQLite(ctx, c.paths.StoreFile(settings), log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	c.settings = settings
	c.store = store.NewEntryRepository(db, log)
	c.cipher = cipher
	c.logger = log

	c.logger.Info().
		Str("func", "Controller.attach").
		Str("db", settings.DB).
		Bool("using_key", settings.UsingKey).
		Msg("diary opened")

	return nil
}
