package handlers

import (
	"net/http"

	"github.com/isdelr/issue-tracker-be/internal/auth"
	"github.com/isdelr/issue-tracker-be/internal/models"
	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/isdelr/issue-tracker-be/internal/web"
	"github.com/rs/zerolog/log"
)

// AuditHandler renders the admin-only activity log.
type AuditHandler struct {
	audit  services.AuditServiceProvider
	render *web.Renderer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(audit services.AuditServiceProvider, render *web.Renderer) *AuditHandler {
	return &AuditHandler{audit: audit, render: render}
}

type logsPage struct {
	User auth.Identity
	Logs []models.LogEntry
}

// List shows every audit entry, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	entries, err := h.audit.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load audit log")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	h.render.Render(w, http.StatusOK, "logs.html", logsPage{User: ident, Logs: entries})
}
