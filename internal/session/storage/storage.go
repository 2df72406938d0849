// Package storage defines the persistence contract for the resident session.
package storage

import (
	"context"
	"errors"

	"github.com/caoslabs/caos/internal/profile"
)

// ErrNotFound indicates no session record is persisted.
var ErrNotFound = errors.New("session record not found")

// Record is the single persisted session slot. The password hash rides along
// with the profile so a future validating auth implementation has material
// to check against; the mocked contract never reads it.
type Record struct {
	Profile      profile.Profile `json:"profile"`
	PasswordHash string          `json:"passwordHash,omitempty"`
}

// Store persists at most one session record. A single fixed slot backs the
// whole application; only one session can be resident at a time.
type Store interface {
	Get(ctx context.Context) (Record, error)
	Put(ctx context.Context, record Record) error
	Clear(ctx context.Context) error
}
