// Package ledger stores journal entries authored before the user has an
// account, plus the capped-use counter gating guest authoring. Entries stay
// here until migration confirms the server accepted them.
package ledger

import (
	"context"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
)

// Repository is the local ledger of unsynced guest entries.
//
// Append does not deduplicate; the caller guarantees unique ids. The guest
// cap is likewise enforced by the caller, not here, to keep this leaf simple.
type Repository interface {
	// Append adds an entry to the unsynced set.
	Append(ctx context.Context, e *models.GuestEntry) error

	// Update rewrites the content fields of an existing entry.
	Update(ctx context.Context, e *models.GuestEntry) error

	// List returns all entries in insertion order.
	List(ctx context.Context) ([]models.GuestEntry, error)

	// Remove deletes exactly the given ids. Unknown ids are ignored.
	Remove(ctx context.Context, ids []string) error

	// Clear wipes both the entries and the usage counter. Used only after a
	// fully successful migration.
	Clear(ctx context.Context) error

	// UsageCount returns how many guest saves have been consumed.
	UsageCount(ctx context.Context) (int, error)

	// IncrementUsage consumes one guest save.
	IncrementUsage(ctx context.Context) error
}

// HasRemainingUsage reports whether another guest save fits under limit.
func HasRemainingUsage(ctx context.Context, r Repository, limit int) (bool, error) {
	n, err := r.UsageCount(ctx)
	if err != nil {
		return false, err
	}
	return n < limit, nil
}
