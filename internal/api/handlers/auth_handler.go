package handlers

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/isdelr/issue-tracker-be/internal/auth"
	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/isdelr/issue-tracker-be/internal/web"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	sessions *scs.SessionManager
	users    services.UserServiceProvider
	audit    services.AuditServiceProvider
	render   *web.Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *scs.SessionManager, users services.UserServiceProvider, audit services.AuditServiceProvider, render *web.Renderer) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users, audit: audit, render: render}
}

type loginPage struct {
	Error string
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "login.html", loginPage{})
}

// Login verifies the submitted credentials and binds the identity to the
// session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.Error(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", username).Msg("Failed authentication attempt")
			h.render.Render(w, http.StatusUnauthorized, "login.html", loginPage{Error: "Invalid username or password"})
			return
		}
		log.Error().Err(err).Str("username", username).Msg("Failed to look up user during login")
		h.render.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.SignIn(r.Context(), h.sessions, user); err != nil {
		log.Error().Err(err).Str("username", username).Msg("Failed to establish session")
		h.render.Error(w, http.StatusInternalServerError, "Failed to establish session")
		return
	}

	h.audit.Record(user.Username, "User logged in")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout destroys the session, if any, and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if ident, ok := auth.IdentityFromSession(r.Context(), h.sessions); ok {
		h.audit.Record(ident.Username, "User logged out")
	}
	if err := auth.SignOut(r.Context(), h.sessions); err != nil {
		log.Error().Err(err).Msg("Failed to destroy session")
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
