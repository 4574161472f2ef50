// Package auditlog provides the in-process audit store backing the
// intake domain's AuditLog interface.
package auditlog

import (
	"context"
	"sync"
	"time"

	"github.com/davidleathers/demo-call-gateway/internal/domain/intake"
)

// MemoryLog is a mutex-guarded append-only audit log. Alongside the
// entry list it keeps a per-hash timestamp index pruned on every
// access, so CountSince never scans the full history.
//
// Entries live for the process lifetime only. That is an accepted
// limitation of the demo deployment, not something to fix here.
type MemoryLog struct {
	mu      sync.RWMutex
	entries []intake.AuditEntry
	byHash  map[string][]time.Time
}

// NewMemoryLog creates an empty in-memory audit log
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		byHash: make(map[string][]time.Time),
	}
}

// Append records an entry
func (l *MemoryLog) Append(_ context.Context, entry intake.AuditEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	l.byHash[entry.PhoneHash] = append(l.byHash[entry.PhoneHash], entry.CreatedAt)
	return nil
}

// CountSince returns the number of entries for phoneHash created at or
// after windowStart. Older index timestamps are evicted as a side effect,
// keeping the per-hash index bounded by the window.
func (l *MemoryLog) CountSince(_ context.Context, phoneHash string, windowStart time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamps := l.byHash[phoneHash]
	kept := stamps[:0]
	for _, ts := range stamps {
		if !ts.Before(windowStart) {
			kept = append(kept, ts)
		}
	}

	if len(kept) == 0 {
		delete(l.byHash, phoneHash)
	} else {
		l.byHash[phoneHash] = kept
	}

	return len(kept), nil
}

// Entries returns a copy of all recorded entries, oldest first
func (l *MemoryLog) Entries(_ context.Context) ([]intake.AuditEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]intake.AuditEntry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

var _ intake.AuditLog = (*MemoryLog)(nil)
