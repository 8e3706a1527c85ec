package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no record exists under the key. Corrupt records
	// are reported the same way so callers reinitialize defaults.
	ErrNotFound = errors.New("storage: record not found")

	// ErrInvalidKey indicates an empty or unusable key.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store persists whole JSON records under fixed keys.
type Store interface {
	// Load decodes the record under key into v. Returns ErrNotFound when the
	// key is absent or the stored record cannot be decoded.
	Load(ctx context.Context, key string, v any) error

	// Save encodes v and overwrites the record under key.
	Save(ctx context.Context, key string, v any) error

	// Delete removes the record under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
