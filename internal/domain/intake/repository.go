package intake

import (
	"context"
	"time"
)

// AuditLog is the append-only store of audit entries. Implementations
// must be safe for concurrent appends. The demo implementation is
// in-process memory; entries do not survive a restart.
type AuditLog interface {
	// Append records an entry. Entries are never updated in place;
	// callers append the final state after dispatch resolves.
	Append(ctx context.Context, entry AuditEntry) error

	// CountSince returns how many entries for the given phone hash have
	// a creation timestamp at or after the window start.
	CountSince(ctx context.Context, phoneHash string, windowStart time.Time) (int, error)

	// Entries returns a snapshot of all recorded entries, oldest first.
	Entries(ctx context.Context) ([]AuditEntry, error)
}
