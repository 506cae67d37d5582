package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/isdelr/issue-tracker-be/internal/models"
)

// Identity is the authenticated user record attached to a session. The
// password hash is deliberately never stored here.
type Identity struct {
	UserID   int64
	Username string
	Role     string
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Session keys under which the identity fields are stored.
const (
	sessionKeyUserID   = "userID"
	sessionKeyUsername = "username"
	sessionKeyRole     = "role"
)

// identityKey is the context key for the request identity.
type contextKey string

const identityKey = contextKey("identity")

// NewSessionManager builds the session manager backing the login sessions.
// Sessions live in server memory keyed by the cookie token, so restarting
// the process logs everyone out.
func NewSessionManager(lifetime time.Duration) *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = lifetime
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	return sm
}

// SignIn renews the session token and binds the user's identity to it.
func SignIn(ctx context.Context, sessions *scs.SessionManager, user models.User) error {
	// Renew to avoid session fixation across the login boundary.
	if err := sessions.RenewToken(ctx); err != nil {
		return err
	}
	sessions.Put(ctx, sessionKeyUserID, user.ID)
	sessions.Put(ctx, sessionKeyUsername, user.Username)
	sessions.Put(ctx, sessionKeyRole, user.Role)
	return nil
}

// SignOut destroys the session.
func SignOut(ctx context.Context, sessions *scs.SessionManager) error {
	return sessions.Destroy(ctx)
}

// IdentityFromSession reads the identity bound to the current session, if any.
func IdentityFromSession(ctx context.Context, sessions *scs.SessionManager) (Identity, bool) {
	if !sessions.Exists(ctx, sessionKeyUserID) {
		return Identity{}, false
	}
	return Identity{
		UserID:   sessions.GetInt64(ctx, sessionKeyUserID),
		Username: sessions.GetString(ctx, sessionKeyUsername),
		Role:     sessions.GetString(ctx, sessionKeyRole),
	}, true
}

// FromContext returns the identity placed on the request context by the
// guards below.
func FromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(identityKey).(Identity)
	return ident, ok
}

// RequireUser creates a middleware that redirects unauthenticated requests
// to the login page.
func RequireUser(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromSession(r.Context(), sessions)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin creates a middleware that rejects any request whose session
// does not carry an admin identity. Unauthenticated requests get the same
// 403 as non-admin ones.
func RequireAdmin(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromSession(r.Context(), sessions)
			if !ok || !ident.IsAdmin() {
				http.Error(w, "Access Denied: Admins Only", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
