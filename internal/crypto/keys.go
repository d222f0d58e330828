// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// GenerateKey returns a fresh random key of [KeySize] bytes.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// SaveKey writes key to path as base64url text, readable by the owner only.
// The parent directory is created with mode 0700. The write is atomic, and an
// existing file at path is never replaced: [ErrKeyExists] is returned instead.
func SaveKey(path string, key []byte) error {
	if len(key) != KeySize {
		return fmt.Errorf("%w: key must be %d bytes, got %d", ErrKeyUnavailable, KeySize, len(key))
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrKeyExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat key file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	encoded := base64.URLEncoding.EncodeToString(key) + "\n"
	if err := renameio.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}

	return nil
}

// LoadKey reads a key written by [SaveKey]. A file holding exactly [KeySize]
// raw bytes is accepted as well.
func LoadKey(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	if len(raw) == KeySize {
		return raw, nil
	}

	text := bytes.TrimSpace(raw)
	for _, enc := range []*base64.Encoding{base64.URLEncoding, base64.StdEncoding} {
		key := make([]byte, enc.DecodedLen(len(text)))
		n, decodeErr := enc.Decode(key, text)
		if decodeErr == nil && n == KeySize {
			return key[:n], nil
		}
	}

	return nil, fmt.Errorf("%w: %s does not contain a %d-byte key", ErrKeyUnavailable, path, KeySize)
}
