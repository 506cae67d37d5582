package handlers

import (
	"net/http"

	"github.com/isdelr/issue-tracker-be/internal/auth"
	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/isdelr/issue-tracker-be/internal/web"
	"github.com/rs/zerolog/log"
)

// ExportHandler streams the issue table as a spreadsheet download.
type ExportHandler struct {
	export services.ExportServiceProvider
	audit  services.AuditServiceProvider
	render *web.Renderer
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(export services.ExportServiceProvider, audit services.AuditServiceProvider, render *web.Renderer) *ExportHandler {
	return &ExportHandler{export: export, audit: audit, render: render}
}

// Download builds the workbook and serves it as an attachment. The audit
// entry is only written once the workbook exists; a failed export produces
// no entry.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())

	f, err := h.export.ExportIssues()
	if err != nil {
		log.Error().Err(err).Msg("Failed to export issues")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer f.Close()

	h.audit.Record(ident.Username, "Exported issues to Excel")

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=issues.xlsx`)
	if err := f.Write(w); err != nil {
		// Headers are gone at this point; all we can do is log it.
		log.Error().Err(err).Msg("Failed to stream spreadsheet to client")
	}
}
