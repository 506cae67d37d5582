package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditServiceRecordAndList(t *testing.T) {
	svc := NewAuditService(newTestDB(t, "audit_record"))

	svc.Record("admin", "User logged in")
	svc.Record("bob", "Added new issue: Bug A")

	entries, err := svc.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first
	assert.Equal(t, "bob", entries[0].User)
	assert.Equal(t, "Added new issue: Bug A", entries[0].Action)
	assert.Equal(t, "admin", entries[1].User)

	_, err = time.ParseInLocation(TimestampLayout, entries[0].Timestamp, timeLocation)
	assert.NoError(t, err)
}

func TestAuditServicePruneBefore(t *testing.T) {
	svc := NewAuditService(newTestDB(t, "audit_prune"))

	pinClock(t, time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	svc.Record("admin", "User logged in")

	pinClock(t, time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC))
	svc.Record("admin", "Exported issues to Excel")

	pruned, err := svc.PruneBefore(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)

	entries, err := svc.List()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Exported issues to Excel", entries[0].Action)

	// Nothing left past the cutoff
	pruned, err = svc.PruneBefore(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, pruned)
}
