package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/isdelr/issue-tracker-be/internal/database"
	"github.com/stretchr/testify/require"
)

// newTestDB opens an in-memory SQLite database with the schema applied.
// A shared-cache URI keeps the database alive across pooled connections.
func newTestDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.New("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

// pinClock fixes the service clock for the duration of the test.
func pinClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}
