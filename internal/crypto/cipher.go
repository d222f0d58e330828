// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length in bytes of a diary key.
const KeySize = chacha20poly1305.KeySize

const tokenVersion byte = 1

// Strict rejects non-zero padding bits, so every distinct token string maps to
// a distinct byte sequence.
var tokenEncoding = base64.RawURLEncoding.Strict()

// xchachaCipher is the XChaCha20-Poly1305 implementation of [Cipher].
type xchachaCipher struct {
	aead cipher.AEAD
}

// NewCipher returns a [Cipher] bound to key. The key must be exactly
// [KeySize] bytes long.
func NewCipher(key []byte) (Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes, got %d", ErrKeyUnavailable, KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyUnavailable, err)
	}

	return &xchachaCipher{aead: aead}, nil
}

// Encrypt implements [Cipher]. A fresh random nonce is drawn for every call.
func (c *xchachaCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	header := []byte{tokenVersion}
	blob := make([]byte, 0, len(header)+len(nonce)+len(plaintext)+c.aead.Overhead())
	blob = append(blob, header...)
	blob = append(blob, nonce...)
	blob = c.aead.Seal(blob, nonce, []byte(plaintext), header)

	return tokenEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Cipher].
func (c *xchachaCipher) Decrypt(token string) (string, error) {
	blob, err := tokenEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: malformed token: %w", ErrInvalidCiphertext, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(blob) < 1+nonceSize+c.aead.Overhead() {
		return "", fmt.Errorf("%w: token too short", ErrInvalidCiphertext)
	}
	if blob[0] != tokenVersion {
		return "", fmt.Errorf("%w: unsupported token version %d", ErrInvalidCiphertext, blob[0])
	}

	header, nonce, sealed := blob[:1], blob[1:1+nonceSize], blob[1+nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, header)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrInvalidCiphertext)
	}

	return string(plaintext), nil
}

// IsToken reports whether s has the shape of a token produced by Encrypt.
// It cannot tell which key sealed it.
func IsToken(s string) bool {
	blob, err := tokenEncoding.DecodeString(s)
	if err != nil {
		return false
	}
	return len(blob) >= 1+chacha20poly1305.NonceSizeX+chacha20poly1305.Overhead && blob[0] == tokenVersion
}
