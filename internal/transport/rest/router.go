package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	"github.com/SamridhiParajuli/store-dashboard/internal/department"
	"github.com/SamridhiParajuli/store-dashboard/internal/session"
	"github.com/SamridhiParajuli/store-dashboard/internal/task"
	"github.com/SamridhiParajuli/store-dashboard/internal/transport/middleware"
	"github.com/SamridhiParajuli/store-dashboard/internal/transport/swagger"
	"github.com/SamridhiParajuli/store-dashboard/internal/user"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Session    *session.Handler
	Authz      *authz.Handler
	User       *user.Handler
	Task       *task.Handler
	Department *department.Handler
}

// RegisterAllRoutes mounts the API. Route-level authorization goes
// through the evaluator guard; handlers re-check capabilities and
// apply department scoping at the service layer.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, evaluator *authz.Evaluator, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	guard := middleware.NewGuard(evaluator, logger)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and swagger UI at root
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Session.Login)
			sr.Post("/logout", h.Session.Logout)
		})

		// Protected routes
		r.Group(func(pr chi.Router) {
			pr.Use(h.Session.AuthMiddleware)

			pr.Get("/auth/me", h.Session.Me)

			// Permission catalog and matrix (admin screen)
			pr.Group(func(ar chi.Router) {
				ar.Use(guard.RequireEntry("permissions"))
				ar.Route("/permissions", func(cr chi.Router) {
					cr.Get("/", h.Authz.GetPermissions)
					cr.With(guard.Require("permissions", "permission_management", authz.CapabilityCreate)).
						Post("/", h.Authz.CreatePermission)
					cr.With(guard.Require("permissions", "permission_management", authz.CapabilityEdit)).
						Patch("/{id}", h.Authz.UpdatePermission)
					cr.With(guard.Require("permissions", "permission_management", authz.CapabilityDelete)).
						Delete("/{id}", h.Authz.DeletePermission)
				})
				ar.Route("/roles", func(rr chi.Router) {
					rr.Get("/permissions", h.Authz.GetRoleMatrix)
					rr.With(guard.Require("permissions", "permission_management", authz.CapabilityEdit)).
						Put("/permissions", h.Authz.SetCapability)
					rr.Get("/{role}/permissions", h.Authz.GetRolePermissions)
				})
			})

			// User accounts
			pr.Group(func(ur chi.Router) {
				ur.Use(guard.RequireEntry("users"))
				ur.Route("/users", func(uu chi.Router) {
					uu.Get("/", h.User.List)
					uu.Post("/", h.User.Create)
					uu.Get("/{id}", h.User.Get)
					uu.Patch("/{id}/activate", h.User.Activate)
					uu.Patch("/{id}/deactivate", h.User.Deactivate)
				})
			})

			// Departments
			pr.Group(func(dr chi.Router) {
				dr.Use(guard.RequireEntry("departments"))
				dr.Route("/departments", func(dd chi.Router) {
					dd.Get("/", h.Department.List)
					dd.Get("/{id}", h.Department.Get)
					dd.Post("/", h.Department.Create)
					dd.Put("/{id}", h.Department.Update)
					dd.Delete("/{id}", h.Department.Delete)
				})
			})

			// Tasks: the guard covers screen entry; the task service
			// performs the capability and department checks per call.
			pr.Group(func(tr chi.Router) {
				tr.Use(guard.RequireEntry("tasks"))
				tr.Route("/tasks", func(tt chi.Router) {
					tt.Get("/", h.Task.List)
					tt.Post("/", h.Task.Create)
					tt.Get("/{id}", h.Task.Get)
					tt.Put("/{id}", h.Task.Update)
					tt.Delete("/{id}", h.Task.Delete)
				})
			})
		})
	})
}
