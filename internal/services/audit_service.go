package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/isdelr/issue-tracker-be/internal/models"
	"github.com/rs/zerolog/log"
)

// AuditServiceProvider defines the interface for the audit log.
type AuditServiceProvider interface {
	Record(actor, action string)
	List() ([]models.LogEntry, error)
	PruneBefore(cutoff time.Time) (int64, error)
}

// AuditService appends and reads the audit log.
type AuditService struct {
	db *sql.DB
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db}
}

// Record appends one audit entry with the current timestamp. It is
// best-effort: a failed write is logged server-side and never surfaces to
// the request that triggered it. Callers invoke it only after the action
// it describes has actually committed.
func (s *AuditService) Record(actor, action string) {
	_, err := s.db.Exec(
		"INSERT INTO logs (user, action, timestamp) VALUES (?, ?, ?)",
		actor, action, timestamp(),
	)
	if err != nil {
		log.Error().Err(err).Str("actor", actor).Str("action", action).Msg("Failed to write audit log entry")
	}
}

// List returns every audit entry, newest first.
func (s *AuditService) List() ([]models.LogEntry, error) {
	rows, err := s.db.Query("SELECT id, user, action, timestamp FROM logs ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var entry models.LogEntry
		if err := rows.Scan(&entry.ID, &entry.User, &entry.Action, &entry.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// PruneBefore deletes audit entries older than cutoff and returns how many
// were removed. Timestamps are stored as formatted strings, so entries are
// parsed back rather than compared lexically; unparseable rows are kept.
func (s *AuditService) PruneBefore(cutoff time.Time) (int64, error) {
	rows, err := s.db.Query("SELECT id, timestamp FROM logs")
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var stale []int64
	for rows.Next() {
		var (
			id int64
			ts string
		)
		if err := rows.Scan(&id, &ts); err != nil {
			return 0, err
		}
		when, err := time.ParseInLocation(TimestampLayout, ts, timeLocation)
		if err != nil {
			continue
		}
		if when.Before(cutoff) {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(stale) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(stale))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(stale))
	for i, id := range stale {
		args[i] = id
	}
	res, err := s.db.Exec("DELETE FROM logs WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
