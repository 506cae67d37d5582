package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/issue-tracker-be/internal/auth"
	"github.com/isdelr/issue-tracker-be/internal/models"
	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/isdelr/issue-tracker-be/internal/web"
	"github.com/rs/zerolog/log"
)

// UserHandler handles the admin-only user management pages.
type UserHandler struct {
	users  services.UserServiceProvider
	audit  services.AuditServiceProvider
	render *web.Renderer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserServiceProvider, audit services.AuditServiceProvider, render *web.Renderer) *UserHandler {
	return &UserHandler{users: users, audit: audit, render: render}
}

type userListPage struct {
	User  auth.Identity
	Users []models.User
}

type addUserPage struct {
	User  auth.Identity
	Users []models.User
	Error string
}

// List renders the user overview.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	users, err := h.users.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	h.render.Render(w, http.StatusOK, "users.html", userListPage{User: ident, Users: users})
}

// ShowAdd renders the add-user form together with the current accounts.
func (h *UserHandler) ShowAdd(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	users, err := h.users.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}
	h.render.Render(w, http.StatusOK, "add_user.html", addUserPage{User: ident, Users: users})
}

// Add creates a user account. A duplicate username re-renders the form with
// the error and the unchanged account list, so the admin keeps context.
func (h *UserHandler) Add(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.FromContext(r.Context())
	if err := r.ParseForm(); err != nil {
		h.render.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	role := r.PostFormValue("role")

	_, err := h.users.Create(username, password, role)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUsername) {
			users, listErr := h.users.List()
			if listErr != nil {
				log.Error().Err(listErr).Msg("Failed to list users")
				h.render.Error(w, http.StatusInternalServerError, "Database error")
				return
			}
			h.render.Render(w, http.StatusConflict, "add_user.html", addUserPage{
				User:  ident,
				Users: users,
				Error: "Username already exists",
			})
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to create user")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.audit.Record(ident.Username, "Added new user: "+username)
	http.Redirect(w, r, "/users", http.StatusFound)
}
