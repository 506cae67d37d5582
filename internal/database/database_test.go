package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := New("file:migrate_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "running migrations twice must be safe")
}

func TestSeedAdmin(t *testing.T) {
	db, err := New("file:seed_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))

	seeded, err := SeedAdmin(db)
	require.NoError(t, err)
	assert.True(t, seeded, "first run on an empty table must create the account")

	seeded, err = SeedAdmin(db)
	require.NoError(t, err)
	assert.False(t, seeded, "second run must not create another account")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)

	var username, hash, role string
	require.NoError(t, db.QueryRow("SELECT username, password_hash, role FROM users").Scan(&username, &hash, &role))
	assert.Equal(t, "admin", username)
	assert.Equal(t, "admin", role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(DefaultAdminPassword)),
		"seeded hash must verify against the default password")
}
