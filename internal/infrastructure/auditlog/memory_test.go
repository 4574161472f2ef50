package auditlog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidleathers/demo-call-gateway/internal/domain/intake"
)

func entry(hash string, at time.Time) intake.AuditEntry {
	return intake.AuditEntry{
		RequestID: fmt.Sprintf("req-%d", at.UnixNano()),
		CreatedAt: at,
		PhoneHash: hash,
		Status:    intake.StatusCreated,
		Provider:  "mock",
	}
}

func TestMemoryLog_CountSince(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()
	now := time.Now()

	require.NoError(t, log.Append(ctx, entry("aaa", now.Add(-2*time.Minute))))
	require.NoError(t, log.Append(ctx, entry("aaa", now.Add(-30*time.Second))))
	require.NoError(t, log.Append(ctx, entry("aaa", now.Add(-5*time.Second))))
	require.NoError(t, log.Append(ctx, entry("bbb", now.Add(-10*time.Second))))

	count, err := log.CountSince(ctx, "aaa", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = log.CountSince(ctx, "bbb", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = log.CountSince(ctx, "missing", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMemoryLog_CountSincePrunesIndex(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()
	now := time.Now()

	for i := 0; i < 10; i++ {
		require.NoError(t, log.Append(ctx, entry("aaa", now.Add(-time.Duration(i+2)*time.Minute))))
	}

	count, err := log.CountSince(ctx, "aaa", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	log.mu.RLock()
	_, indexed := log.byHash["aaa"]
	log.mu.RUnlock()
	assert.False(t, indexed, "expired hash index should be evicted")

	// The audit trail itself is append-only and keeps everything.
	entries, err := log.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestMemoryLog_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	log := NewMemoryLog()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = log.Append(ctx, entry(fmt.Sprintf("hash-%d", i%5), now))
		}(i)
	}
	wg.Wait()

	entries, err := log.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 50)

	count, err := log.CountSince(ctx, "hash-0", now.Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}
