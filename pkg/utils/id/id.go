// Package id provides unique ID generation for datanikah.
//
//	id.NewULID()  // "01ARZ3NDEKTSV4RRFFQ69G5FAV", sortable, used for request and message IDs
//	id.NewUUID()  // "550e8400-e29b-41d4-a716-446655440000", used for chat sessions
package id

import (
	"crypto/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewULID generates a new monotonic ULID string.
func NewULID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// NewUUID generates a new random UUID v4 string.
func NewUUID() string {
	return uuid.NewString()
}

// IsUUID reports whether s parses as a UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
