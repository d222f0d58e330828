// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording shared by the terminal UI and
// the command line.
//
// All Msg* constants are human-readable strings shown in status lines, error
// overlays or printed on exit. Keeping them in one place ensures consistent
// wording across both front ends.
package app

import (
	"errors"

	"github.com/MKhiriev/mdiary/internal/config"
	"github.com/MKhiriev/mdiary/internal/controller"
	"github.com/MKhiriev/mdiary/internal/crypto"
	"github.com/MKhiriev/mdiary/internal/store"
)

const (
	// MsgKeyUnavailable is printed when the diary is encrypted and its key
	// cannot be loaded.
	MsgKeyUnavailable = "Use your key to get access to the diary by using the [--key, -k KEY] argument!"

	// MsgInvalidCiphertext is shown when a stored entry does not decrypt
	// with the current key. The session ends.
	MsgInvalidCiphertext = "An entry could not be decrypted. The key does not match this diary or the entry is corrupted."

	// MsgStorageFailure is shown when the store file cannot be read or
	// written. The session ends.
	MsgStorageFailure = "The diary file could not be accessed."

	// MsgEntryNotFound is shown when the selected entry no longer exists.
	MsgEntryNotFound = "That entry no longer exists."

	// MsgInvalidDiaryName is shown when the name typed during setup is empty
	// or contains a path separator.
	MsgInvalidDiaryName = "Please give your diary a plain name (no slashes)."

	// MsgKeyExists is shown when setup would overwrite an existing key file.
	MsgKeyExists = "A key for a diary with this name already exists. Choose another name."

	// MsgStoreExists is shown when setup would reopen an old diary file of
	// the same name in a different encryption mode.
	MsgStoreExists = "A diary with this name already exists with a different key setting. Choose another name, or match the old setting."

	// MsgInvalidSettings is printed when the settings file is damaged.
	MsgInvalidSettings = "The settings file is damaged. Run with --reset to set the diary up again."

	// MsgNotConfigured is printed by non-interactive commands before setup.
	MsgNotConfigured = "No diary is configured yet. Run mdiary without arguments to create one."

	// MsgEmptyEntry is shown when saving an entry without any text.
	MsgEmptyEntry = "Nothing to save: the entry is empty."

	// MsgUnexpected is the fallback for errors outside the taxonomy.
	MsgUnexpected = "Something went wrong."
)

// UserMessage maps err to the sentence shown to the user. It returns "" for
// a nil error.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, crypto.ErrKeyUnavailable):
		return MsgKeyUnavailable
	case errors.Is(err, crypto.ErrInvalidCiphertext):
		return MsgInvalidCiphertext
	case errors.Is(err, crypto.ErrKeyExists):
		return MsgKeyExists
	case errors.Is(err, store.ErrEntryNotFound):
		return MsgEntryNotFound
	case errors.Is(err, store.ErrStorage):
		return MsgStorageFailure
	case errors.Is(err, controller.ErrStoreExists):
		return MsgStoreExists
	case errors.Is(err, config.ErrInvalidDiaryName):
		return MsgInvalidDiaryName
	case errors.Is(err, config.ErrInvalidSettings):
		return MsgInvalidSettings
	case errors.Is(err, controller.ErrNotConfigured):
		return MsgNotConfigured
	default:
		return MsgUnexpected
	}
}
