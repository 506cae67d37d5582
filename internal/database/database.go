package database

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite" // SQLite driver
)

// DefaultAdminPassword is the password of the seeded admin account. It is
// expected to be changed after the first login.
const DefaultAdminPassword = "admin"

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
// The statements are idempotent, so running them on every start is safe.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE,
		password_hash TEXT,
		role TEXT
	);

	CREATE TABLE IF NOT EXISTS issues (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		description TEXT,
		type TEXT,
		status TEXT,
		created_at TEXT
	);

	CREATE TABLE IF NOT EXISTS logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user TEXT,
		action TEXT,
		timestamp TEXT
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// SeedAdmin inserts the default admin/admin account if no user named
// "admin" exists yet. It returns true when the account was created.
func SeedAdmin(db *sql.DB) (bool, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM users WHERE username = 'admin'`).Scan(&id)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash default admin password: %w", err)
	}

	_, err = db.Exec(`INSERT INTO users (username, password_hash, role) VALUES ('admin', ?, 'admin')`, string(hash))
	if err != nil {
		return false, err
	}
	return true, nil
}
