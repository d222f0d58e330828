// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package controller

import "errors"

var (
	// ErrNotConfigured is returned by entry operations while the session is
	// still in first-run setup and no store is open.
	ErrNotConfigured = errors.New("diary is not configured")

	// ErrSessionEnded is returned by entry operations after a fatal error
	// has moved the session to quit.
	ErrSessionEnded = errors.New("session has ended")

	// ErrAlreadyConfigured is returned by [Controller.Initialize] outside of
	// first-run setup.
	ErrAlreadyConfigured = errors.New("diary is already configured")

	// ErrStoreExists is returned by [Controller.Initialize] when a store
	// file with the chosen name already holds entries written in another
	// encryption mode, or sealed with a key that is not at hand.
	ErrStoreExists = errors.New("a diary with this name already exists")
)
