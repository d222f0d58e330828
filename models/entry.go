// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// Entry is a single diary record.
//
// Text holds whatever the store persisted: plaintext for an unencrypted
// diary, an opaque ciphertext token otherwise. Callers above the store only
// ever see plaintext because the controller decrypts on the way out.
type Entry struct {
	// ID is assigned by the store, starts at 1 and is never reused.
	ID int64

	// Text is the entry body.
	Text string

	// Timestamp is the creation instant in UTC. Updates do not touch it.
	Timestamp time.Time
}

// Header renders the one-line title shown above an entry in the reader.
func (e Entry) Header() string {
	local := e.Timestamp.Local()
	return fmt.Sprintf("Entry no. %d on %s (%s)", e.ID, local.Format("2006-01-02"), local.Format("15:04"))
}

// CreatedOn is the creation date in local time.
func (e Entry) CreatedOn() string {
	return e.Timestamp.Local().Format("2006-01-02")
}
