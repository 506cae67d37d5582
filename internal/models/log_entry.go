package models

// LogEntry represents one immutable audit record of a user-triggered action.
type LogEntry struct {
	ID        int64  `json:"id"`
	User      string `json:"user"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}
