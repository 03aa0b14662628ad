package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dbtsantiago/care-backend/internal/auth"
	"github.com/dbtsantiago/care-backend/internal/handlers"
	"github.com/dbtsantiago/care-backend/internal/middleware"
	"github.com/dbtsantiago/care-backend/internal/services"
)

// Deps is everything the route table needs wired in.
type Deps struct {
	Tokens     *auth.TokenService
	AdminAuth  *services.AdminAuthService
	UserAuth   *services.UserAuthService
	Users      *services.UserService
	Therapists *services.TherapistService
	Sessions   *services.SessionService
}

func SetupRoutes(r *chi.Mux, deps Deps) {
	authHandler := handlers.NewAuthHandler(deps.UserAuth)
	adminAuthHandler := handlers.NewAdminAuthHandler(deps.AdminAuth)
	usersHandler := handlers.NewUsersHandler(deps.Users)
	therapistsHandler := handlers.NewTherapistsHandler(deps.Therapists)
	sessionsHandler := handlers.NewSessionsHandler(deps.Sessions)

	requireAdmin := middleware.RequireAdmin(deps.Tokens, deps.AdminAuth)
	requireUser := middleware.RequireUser(deps.Tokens, deps.UserAuth)

	// Patient auth routes
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/auth/reset-password", authHandler.ResetPassword)

	// Admin auth routes (admin accounts are created directly in the database)
	r.Post("/api/admin/login", adminAuthHandler.Login)

	// Patient routes (user guard)
	r.Group(func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/api/auth/me", authHandler.Me)
		r.Post("/api/sessions", sessionsHandler.Create)
		r.Get("/api/sessions", sessionsHandler.List)
		r.Put("/api/sessions/{id}/complete", sessionsHandler.Complete)
		r.Put("/api/sessions/{id}/cancel", sessionsHandler.Cancel)
		r.Post("/api/sessions/{id}/records", sessionsHandler.AddRecord)
		r.Get("/api/sessions/{id}/records", sessionsHandler.ListRecords)
	})

	// Admin routes (admin guard)
	r.Group(func(r chi.Router) {
		r.Use(requireAdmin)
		r.Post("/api/admin/users", usersHandler.Create)
		r.Get("/api/admin/users", usersHandler.List)
		r.Get("/api/admin/users/counts", usersHandler.Counts)
		r.Get("/api/admin/users/{id}", usersHandler.Get)
		r.Put("/api/admin/users/{id}/therapist", usersHandler.AssignTherapist)
		r.Delete("/api/admin/users/{id}/therapist", usersHandler.RemoveTherapist)

		r.Post("/api/admin/therapists", therapistsHandler.Create)
		r.Get("/api/admin/therapists", therapistsHandler.List)
		r.Get("/api/admin/therapists/{id}", therapistsHandler.Get)
		r.Put("/api/admin/therapists/{id}", therapistsHandler.Update)
		r.Delete("/api/admin/therapists/{id}", therapistsHandler.Delete)
		r.Put("/api/admin/therapists/{id}/activate", therapistsHandler.Activate)
		r.Put("/api/admin/therapists/{id}/deactivate", therapistsHandler.Deactivate)
		r.Get("/api/admin/therapists/{id}/patient-count", therapistsHandler.PatientCount)
	})

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
}
