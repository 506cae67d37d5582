package models

// Issue represents a trackable work item.
//
// CreatedAt is overwritten on every edit, so it effectively carries the
// last-modified time. The exported sheet and the edit page both rely on
// that behavior, so it is kept rather than split into two timestamps.
type Issue struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`   // e.g. "bug", "feature", "task"
	Status      string `json:"status"` // e.g. "open", "in progress", "closed"
	CreatedAt   string `json:"createdAt"`
}
