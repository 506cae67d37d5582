package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/issue-tracker-be/internal/auth"
	"github.com/isdelr/issue-tracker-be/internal/models"
	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/isdelr/issue-tracker-be/internal/web"
	"github.com/rs/zerolog/log"
)

// IssueHandler handles the issue pages: list, create, edit, delete.
type IssueHandler struct {
	issues services.IssueServiceProvider
	audit  services.AuditServiceProvider
	render *web.Renderer
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issues services.IssueServiceProvider, audit services.AuditServiceProvider, render *web.Renderer) *IssueHandler {
	return &IssueHandler{issues: issues, audit: audit, render: render}
}

type issueListPage struct {
	User   auth.Identity
	Issues []models.Issue
	Search string
}

type issueFormPage struct {
	User  auth.Identity
	Issue models.Issue
}

// List renders the issue overview, optionally filtered by a title substring.
func (h *IssueHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	issues, err := h.issues.List(search)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list issues")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.render.Render(w, http.StatusOK, "index.html", issueListPage{User: ident, Issues: issues, Search: search})
}

// ShowAdd renders the new-issue form.
func (h *IssueHandler) ShowAdd(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	h.render.Render(w, http.StatusOK, "add.html", issueFormPage{User: ident})
}

// Add creates an issue from the submitted form. The audit entry and the
// redirect only happen once the insert has committed.
func (h *IssueHandler) Add(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.render.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	title := r.PostFormValue("title")

	_, err := h.issues.Create(title, r.PostFormValue("description"), r.PostFormValue("type"), r.PostFormValue("status"))
	if err != nil {
		log.Error().Err(err).Str("title", title).Msg("Failed to create issue")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.audit.Record(ident.Username, "Added new issue: "+title)
	http.Redirect(w, r, "/", http.StatusFound)
}

// ShowEdit renders the edit form for an existing issue.
func (h *IssueHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	id, err := issueID(r)
	if err != nil {
		h.render.Error(w, http.StatusNotFound, "Issue not found")
		return
	}

	issue, err := h.issues.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			h.render.Error(w, http.StatusNotFound, "Issue not found")
			return
		}
		log.Error().Err(err).Int64("issue_id", id).Msg("Failed to load issue")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.render.Render(w, http.StatusOK, "edit.html", issueFormPage{User: ident, Issue: issue})
}

// Edit overwrites an issue with the submitted form values.
func (h *IssueHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	id, err := issueID(r)
	if err != nil {
		h.render.Error(w, http.StatusNotFound, "Issue not found")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.render.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}

	err = h.issues.Update(id, r.PostFormValue("title"), r.PostFormValue("description"), r.PostFormValue("type"), r.PostFormValue("status"))
	if err != nil {
		if errors.Is(err, services.ErrIssueNotFound) {
			h.render.Error(w, http.StatusNotFound, "Issue not found")
			return
		}
		log.Error().Err(err).Int64("issue_id", id).Msg("Failed to update issue")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.audit.Record(ident.Username, fmt.Sprintf("Edited issue #%d", id))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Delete removes an issue by id. A missing id is treated as success.
func (h *IssueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	id, err := issueID(r)
	if err != nil {
		h.render.Error(w, http.StatusNotFound, "Issue not found")
		return
	}

	if err := h.issues.Delete(id); err != nil {
		log.Error().Err(err).Int64("issue_id", id).Msg("Failed to delete issue")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.audit.Record(ident.Username, fmt.Sprintf("Deleted issue #%d", id))
	http.Redirect(w, r, "/", http.StatusFound)
}

func issueID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
