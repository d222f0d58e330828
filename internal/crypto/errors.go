// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrInvalidCiphertext is returned when a token fails to decode or
	// authenticate. It never carries partial plaintext.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")

	// ErrKeyUnavailable is returned when the key file is missing, unreadable
	// or does not hold a usable key.
	ErrKeyUnavailable = errors.New("key unavailable")

	// ErrKeyExists is returned by [SaveKey] when a key file is already present
	// at the target path. Keys are never overwritten.
	ErrKeyExists = errors.New("key file already exists")
)
