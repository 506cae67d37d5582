package services

import (
	"database/sql"
	"fmt"

	"github.com/isdelr/issue-tracker-be/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportSheetName is the worksheet holding the exported issues.
const ExportSheetName = "Issues"

// ExportServiceProvider defines the interface for the spreadsheet export.
type ExportServiceProvider interface {
	ExportIssues() (*excelize.File, error)
}

// ExportService serializes the issue table into an xlsx workbook.
type ExportService struct {
	db *sql.DB
}

// NewExportService creates a new ExportService.
func NewExportService(db *sql.DB) *ExportService {
	return &ExportService{db: db}
}

// exportColumns defines the fixed sheet layout: header and column width.
var exportColumns = []struct {
	header string
	width  float64
}{
	{"ID", 5},
	{"Title", 25},
	{"Description", 40},
	{"Type", 20},
	{"Status", 15},
	{"Created At", 25},
}

// ExportIssues reads the full issue table in ascending id order and builds
// a workbook with one row per issue under a header row. The caller is
// responsible for closing the returned file.
func (s *ExportService) ExportIssues() (*excelize.File, error) {
	rows, err := s.db.Query("SELECT id, title, description, type, status, created_at FROM issues ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		f.Close()
		return nil, err
	}

	header := make([]any, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col.header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(ExportSheetName, name, name, col.width); err != nil {
			f.Close()
			return nil, err
		}
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}

	rowIdx := 2
	for rows.Next() {
		var issue models.Issue
		if err := rows.Scan(&issue.ID, &issue.Title, &issue.Description, &issue.Type, &issue.Status, &issue.CreatedAt); err != nil {
			f.Close()
			return nil, err
		}
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			f.Close()
			return nil, err
		}
		record := []any{issue.ID, issue.Title, issue.Description, issue.Type, issue.Status, issue.CreatedAt}
		if err := f.SetSheetRow(ExportSheetName, cell, &record); err != nil {
			f.Close()
			return nil, err
		}
		rowIdx++
	}
	if err := rows.Err(); err != nil {
		f.Close()
		return nil, fmt.Errorf("reading issues for export: %w", err)
	}
	return f, nil
}
