// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto seals diary entries with a symmetric key kept in a local
// key file.
//
// A ciphertext token is the base64url encoding (no padding) of
//
//	version (1 byte) ‖ nonce (24 bytes) ‖ XChaCha20-Poly1305(plaintext)
//
// where the version byte is also bound as associated data. Tokens are
// printable, so they fit the store's TEXT column as is.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_mock.go -package=mock

// Cipher is a symmetric authenticated cipher bound to one key.
type Cipher interface {
	// Encrypt seals plaintext into a printable token. Two calls with the same
	// input produce different tokens.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a token produced by Encrypt under the same key. Any
	// modification of the token, or a different key, yields
	// [ErrInvalidCiphertext].
	Decrypt(token string) (string, error)
}
