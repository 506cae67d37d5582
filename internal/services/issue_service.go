package services

import (
	"database/sql"
	"errors"

	"github.com/isdelr/issue-tracker-be/internal/models"
)

// ErrIssueNotFound is returned when an issue id does not exist.
var ErrIssueNotFound = errors.New("issue not found")

// IssueServiceProvider defines the interface for issue services.
type IssueServiceProvider interface {
	List(search string) ([]models.Issue, error)
	Get(id int64) (models.Issue, error)
	Create(title, description, issueType, status string) (int64, error)
	Update(id int64, title, description, issueType, status string) error
	Delete(id int64) error
}

// IssueService provides business logic for issue management.
type IssueService struct {
	db *sql.DB
}

// NewIssueService creates a new IssueService.
func NewIssueService(db *sql.DB) *IssueService {
	return &IssueService{db: db}
}

// List returns issues in descending id order (newest first). A non-empty
// search restricts the result to issues whose title contains it; matching
// follows SQLite's LIKE collation.
func (s *IssueService) List(search string) ([]models.Issue, error) {
	query := "SELECT id, title, description, type, status, created_at FROM issues"
	var args []any
	if search != "" {
		query += " WHERE title LIKE ?"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var issues []models.Issue
	for rows.Next() {
		var issue models.Issue
		if err := rows.Scan(&issue.ID, &issue.Title, &issue.Description, &issue.Type, &issue.Status, &issue.CreatedAt); err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

// Get retrieves a single issue by its id.
func (s *IssueService) Get(id int64) (models.Issue, error) {
	var issue models.Issue
	row := s.db.QueryRow("SELECT id, title, description, type, status, created_at FROM issues WHERE id = ?", id)
	err := row.Scan(&issue.ID, &issue.Title, &issue.Description, &issue.Type, &issue.Status, &issue.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Issue{}, ErrIssueNotFound
		}
		return models.Issue{}, err
	}
	return issue, nil
}

// Create inserts a new issue stamped with the current time and returns its id.
func (s *IssueService) Create(title, description, issueType, status string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO issues (title, description, type, status, created_at) VALUES (?, ?, ?, ?, ?)",
		title, description, issueType, status, timestamp(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites every mutable field of an issue, including the
// timestamp. A missing id yields ErrIssueNotFound.
func (s *IssueService) Update(id int64, title, description, issueType, status string) error {
	res, err := s.db.Exec(
		"UPDATE issues SET title = ?, description = ?, type = ?, status = ?, created_at = ? WHERE id = ?",
		title, description, issueType, status, timestamp(), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrIssueNotFound
	}
	return nil
}

// Delete removes an issue by id. Deleting an id that does not exist is not
// an error.
func (s *IssueService) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM issues WHERE id = ?", id)
	return err
}
