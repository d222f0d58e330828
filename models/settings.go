// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// StoreFileExt is appended to the diary name to form the store file name.
const StoreFileExt = ".db"

// Settings is the persisted diary configuration. It lives in the
// "[settings]" section of the settings file.
type Settings struct {
	// DB is the store file name, "<diary name>.db".
	DB string `ini:"db"`

	// UsingKey reports whether entries are encrypted at rest.
	UsingKey bool `ini:"using_key"`
}

// NewSettings builds Settings for a freshly named diary.
func NewSettings(name string, usingKey bool) Settings {
	return Settings{
		DB:       strings.TrimSpace(name) + StoreFileExt,
		UsingKey: usingKey,
	}
}

// Name is the diary name without the store file extension.
func (s Settings) Name() string {
	return strings.TrimSuffix(s.DB, StoreFileExt)
}
