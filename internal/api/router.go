package api

import (
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/issue-tracker-be/internal/api/handlers"
	"github.com/isdelr/issue-tracker-be/internal/auth"
	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/isdelr/issue-tracker-be/internal/web"
)

// NewRouter creates and configures a new Chi router serving the full page
// surface of the tracker.
func NewRouter(
	sessions *scs.SessionManager,
	render *web.Renderer,
	userService services.UserServiceProvider,
	issueService services.IssueServiceProvider,
	auditService services.AuditServiceProvider,
	exportService services.ExportServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Session cookie handling wraps every route
	r.Use(sessions.LoadAndSave)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessions, userService, auditService, render)
	issueHandler := handlers.NewIssueHandler(issueService, auditService, render)
	userHandler := handlers.NewUserHandler(userService, auditService, render)
	auditHandler := handlers.NewAuditHandler(auditService, render)
	exportHandler := handlers.NewExportHandler(exportService, auditService, render)

	// Public routes. Logout checks the session itself so that hitting it
	// without one still lands on the login page.
	r.Get("/login", authHandler.ShowLogin)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// Routes for any authenticated user
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(sessions))
		r.Get("/", issueHandler.List)
		r.Get("/add", issueHandler.ShowAdd)
		r.Post("/add", issueHandler.Add)
		r.Get("/edit/{id}", issueHandler.ShowEdit)
		r.Post("/edit/{id}", issueHandler.Edit)
		r.Get("/delete/{id}", issueHandler.Delete)
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(sessions))
		r.Get("/users", userHandler.List)
		r.Get("/add_user", userHandler.ShowAdd)
		r.Post("/add_user", userHandler.Add)
		r.Get("/logs", auditHandler.List)
		r.Get("/export", exportHandler.Download)
	})

	return r
}
