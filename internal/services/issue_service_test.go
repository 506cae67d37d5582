package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueServiceCreateGetRoundTrip(t *testing.T) {
	svc := NewIssueService(newTestDB(t, "issues_roundtrip"))
	pinClock(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))

	id, err := svc.Create("Bug A", "crashes on save", "bug", "open")
	require.NoError(t, err)

	issue, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Bug A", issue.Title)
	assert.Equal(t, "crashes on save", issue.Description)
	assert.Equal(t, "bug", issue.Type)
	assert.Equal(t, "open", issue.Status)

	// The timestamp must use the fixed office-local layout
	_, err = time.ParseInLocation(TimestampLayout, issue.CreatedAt, timeLocation)
	assert.NoError(t, err)
}

func TestIssueServiceListOrderAndFilter(t *testing.T) {
	svc := NewIssueService(newTestDB(t, "issues_list"))

	_, err := svc.Create("Bug A", "", "bug", "open")
	require.NoError(t, err)
	_, err = svc.Create("Feature B", "", "feature", "open")
	require.NoError(t, err)
	_, err = svc.Create("Bug C", "", "bug", "closed")
	require.NoError(t, err)

	all, err := svc.List("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Bug C", all[0].Title, "newest first")
	assert.Equal(t, "Bug A", all[2].Title)

	bugs, err := svc.List("Bug")
	require.NoError(t, err)
	require.Len(t, bugs, 2)
	assert.Greater(t, bugs[0].ID, bugs[1].ID, "filtered list keeps descending id order")

	none, err := svc.List("Zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIssueServiceUpdate(t *testing.T) {
	svc := NewIssueService(newTestDB(t, "issues_update"))

	pinClock(t, time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
	id, err := svc.Create("Bug A", "old", "bug", "open")
	require.NoError(t, err)
	created, err := svc.Get(id)
	require.NoError(t, err)

	pinClock(t, time.Date(2026, 3, 15, 11, 0, 0, 0, time.UTC))
	require.NoError(t, svc.Update(id, "Bug A!", "new", "bug", "closed"))

	updated, err := svc.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Bug A!", updated.Title)
	assert.Equal(t, "new", updated.Description)
	assert.Equal(t, "closed", updated.Status)
	assert.NotEqual(t, created.CreatedAt, updated.CreatedAt, "edit overwrites the timestamp")

	assert.ErrorIs(t, svc.Update(9999, "x", "y", "bug", "open"), ErrIssueNotFound)
}

func TestIssueServiceDelete(t *testing.T) {
	svc := NewIssueService(newTestDB(t, "issues_delete"))

	id, err := svc.Create("Bug A", "", "bug", "open")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(id))

	_, err = svc.Get(id)
	assert.ErrorIs(t, err, ErrIssueNotFound)

	// Deleting an id that never existed is still a success
	assert.NoError(t, svc.Delete(9999))
}
