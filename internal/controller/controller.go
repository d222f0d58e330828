// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package controller owns a diary session: the current view, the open store
// and the optional cipher.
//
// Entries are encrypted on the way into the store and decrypted on the way
// out, so the presentation layer only ever handles plaintext. Fatal failures
// (a storage error or a ciphertext that does not authenticate) move the
// session to [ViewQuit] and are kept for reporting via [Controller.Err].
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/mdiary/internal/config"
	"github.com/MKhiriev/mdiary/internal/crypto"
	"github.com/MKhiriev/mdiary/internal/logger"
	"github.com/MKhiriev/mdiary/internal/store"
	"github.com/MKhiriev/mdiary/models"
)

// Controller drives one diary session. It is not safe for concurrent use;
// the UI event loop calls it from a single goroutine.
type Controller struct {
	paths    *config.Paths
	settings models.Settings

	store  store.EntryRepository
	cipher crypto.Cipher

	view   View
	err    error
	logger *logger.Logger
}

// New returns a Controller over an already opened store, starting in
// [ViewMenu]. A nil cipher means entries are stored as plaintext.
func New(settings models.Settings, repo store.EntryRepository, cipher crypto.Cipher, log *logger.Logger) *Controller {
	return &Controller{
		settings: settings,
		store:    repo,
		cipher:   cipher,
		view:     View{Kind: ViewMenu},
		logger:   log,
	}
}

// View returns the current view.
func (c *Controller) View() View {
	return c.view
}

// Settings returns the settings of the open diary. It is the zero value
// during first-run setup.
func (c *Controller) Settings() models.Settings {
	return c.settings
}

// Err returns the fatal error that ended the session, if any.
func (c *Controller) Err() error {
	return c.err
}

// Dispatch applies in to the current view. On [ErrInvalidTransition] the
// view is unchanged.
func (c *Controller) Dispatch(in Intent) (View, error) {
	next, err := Transition(c.view, in)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "Controller.Dispatch").Msg("rejected view transition")
		return c.view, err
	}

	c.logger.Debug().
		Str("func", "Controller.Dispatch").
		Stringer("from", c.view).
		Stringer("to", next).
		Stringer("intent", in).
		Msg("view transition")
	c.view = next

	return c.view, nil
}

// NewEntry stores text as a new entry, encrypting it when a key is in use.
// The returned entry carries the plaintext.
func (c *Controller) NewEntry(ctx context.Context, text string) (models.Entry, error) {
	if err := c.ready(); err != nil {
		return models.Entry{}, err
	}
	ctx = c.logger.WithContext(ctx)

	sealed, err := c.seal(text)
	if err != nil {
		return models.Entry{}, c.fatal("Controller.NewEntry", err)
	}

	entry, err := c.store.Create(ctx, sealed)
	if err != nil {
		return models.Entry{}, c.fatal("Controller.NewEntry", fmt.Errorf("create entry: %w", err))
	}

	c.logger.Info().Str("func", "Controller.NewEntry").Int64("entry_id", entry.ID).Msg("entry created")
	entry.Text = text
	return entry, nil
}

// ListEntries returns every entry in ascending id order with plaintext
// bodies. An entry that fails to decrypt ends the session; the returned error
// wraps [crypto.ErrInvalidCiphertext] and names the entry id.
func (c *Controller) ListEntries(ctx context.Context) ([]models.Entry, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	ctx = c.logger.WithContext(ctx)

	entries, err := c.store.List(ctx)
	if err != nil {
		return nil, c.fatal("Controller.ListEntries", fmt.Errorf("list entries: %w", err))
	}

	for i := range entries {
		plain, openErr := c.open(entries[i].Text)
		if openErr != nil {
			return nil, c.fatal("Controller.ListEntries", fmt.Errorf("entry %d: %w", entries[i].ID, openErr))
		}
		entries[i].Text = plain
	}

	return entries, nil
}

// LoadEntry returns the plaintext of one entry. A missing id yields
// [store.ErrEntryNotFound] and does not end the session.
func (c *Controller) LoadEntry(ctx context.Context, id int64) (models.Entry, error) {
	if err := c.ready(); err != nil {
		return models.Entry{}, err
	}
	ctx = c.logger.WithContext(ctx)

	entry, err := c.store.Get(ctx, id)
	if errors.Is(err, store.ErrEntryNotFound) {
		return models.Entry{}, fmt.Errorf("entry %d: %w", id, err)
	}
	if err != nil {
		return models.Entry{}, c.fatal("Controller.LoadEntry", fmt.Errorf("get entry %d: %w", id, err))
	}

	plain, err := c.open(entry.Text)
	if err != nil {
		return models.Entry{}, c.fatal("Controller.LoadEntry", fmt.Errorf("entry %d: %w", id, err))
	}
	entry.Text = plain

	return entry, nil
}

// SaveEntry replaces the text of entry id, keeping its creation timestamp.
func (c *Controller) SaveEntry(ctx context.Context, id int64, text string) (models.Entry, error) {
	if err := c.ready(); err != nil {
		return models.Entry{}, err
	}
	ctx = c.logger.WithContext(ctx)

	sealed, err := c.seal(text)
	if err != nil {
		return models.Entry{}, c.fatal("Controller.SaveEntry", err)
	}

	entry, err := c.store.Update(ctx, id, sealed)
	if errors.Is(err, store.ErrEntryNotFound) {
		return models.Entry{}, fmt.Errorf("entry %d: %w", id, err)
	}
	if err != nil {
		return models.Entry{}, c.fatal("Controller.SaveEntry", fmt.Errorf("update entry %d: %w", id, err))
	}

	c.logger.Info().Str("func", "Controller.SaveEntry").Int64("entry_id", id).Msg("entry updated")
	entry.Text = text
	return entry, nil
}

// DeleteEntry removes entry id. Deleting an id that is already gone is not
// an error.
func (c *Controller) DeleteEntry(ctx context.Context, id int64) error {
	if err := c.ready(); err != nil {
		return err
	}
	ctx = c.logger.WithContext(ctx)

	err := c.store.Delete(ctx, id)
	if errors.Is(err, store.ErrEntryNotFound) {
		c.logger.Debug().Str("func", "Controller.DeleteEntry").Int64("entry_id", id).Msg("entry already gone")
		return nil
	}
	if err != nil {
		return c.fatal("Controller.DeleteEntry", fmt.Errorf("delete entry %d: %w", id, err))
	}

	c.logger.Info().Str("func", "Controller.DeleteEntry").Int64("entry_id", id).Msg("entry deleted")
	return nil
}

// CountEntries returns the number of stored entries.
func (c *Controller) CountEntries(ctx context.Context) (int64, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	n, err := c.store.Count(c.logger.WithContext(ctx))
	if err != nil {
		return 0, c.fatal("Controller.CountEntries", fmt.Errorf("count entries: %w", err))
	}
	return n, nil
}

// EntryExists reports whether entry id is present.
func (c *Controller) EntryExists(ctx context.Context, id int64) bool {
	if c.ready() != nil {
		return false
	}
	return c.store.Exists(c.logger.WithContext(ctx), id)
}

// Close releases the store. It is safe to call more than once and on a
// controller that never opened one.
func (c *Controller) Close() error {
	if c.store == nil {
		return nil
	}

	err := c.store.Close()
	c.store = nil
	if err != nil {
		c.logger.Err(err).Str("func", "Controller.Close").Msg("failed to close store")
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

func (c *Controller) ready() error {
	switch {
	case c.view.Kind == ViewQuit && c.err != nil:
		return fmt.Errorf("%w: %w", ErrSessionEnded, c.err)
	case c.store == nil:
		return ErrNotConfigured
	}
	return nil
}

// fatal ends the session with err.
func (c *Controller) fatal(fn string, err error) error {
	c.logger.Err(err).Str("func", fn).Msg("fatal error, ending session")
	c.err = err
	c.view = View{Kind: ViewQuit}
	return err
}

func (c *Controller) seal(text string) (string, error) {
	if c.cipher == nil {
		return text, nil
	}

	token, err := c.cipher.Encrypt(text)
	if err != nil {
		return "", fmt.Errorf("encrypt entry: %w", err)
	}
	return token, nil
}

func (c *Controller) open(text string) (string, error) {
	if c.cipher == nil {
		return text, nil
	}
	return c.cipher.Decrypt(text)
}
