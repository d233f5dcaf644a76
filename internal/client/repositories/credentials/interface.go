// Package credentials persists the access/refresh token pair. It is a dumb
// durable leaf: no validation lives here, and callers treat an unavailable
// store the same as an empty one.
package credentials

import (
	"context"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
)

// Store reads and writes the single credential pair.
//
// The pair is always replaced as a whole; there is no way to update one token
// without the other.
type Store interface {
	// Read returns the stored pair, or ok=false when none is stored.
	Read(ctx context.Context) (models.TokenPair, bool, error)

	// Write replaces the stored pair atomically.
	Write(ctx context.Context, pair models.TokenPair) error

	// Clear removes the stored pair. Clearing an empty store is a no-op.
	Clear(ctx context.Context) error
}
