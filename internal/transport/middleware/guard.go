package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	"github.com/SamridhiParajuli/store-dashboard/internal/session"
)

// Guard routes every route-level authorization check through the
// evaluator's Decide, so a denial always renders as an explicit
// "not permitted" response.
type Guard struct {
	evaluator *authz.Evaluator
	logger    *slog.Logger
}

func NewGuard(evaluator *authz.Evaluator, logger *slog.Logger) *Guard {
	return &Guard{evaluator: evaluator, logger: logger}
}

// Require gates a route on the composed resource + capability check.
func (g *Guard) Require(resource, permission string, action authz.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := session.ActorFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			decision, err := g.evaluator.Decide(resource, permission, action, actor)
			if err != nil {
				if appErr, ok := internal.IsAppError(err); ok && appErr.Code == internal.ErrCodeUnknownPermission {
					// Caller bug: the route references a permission
					// missing from the catalog.
					g.logger.Error("route guard references unknown permission",
						"resource", resource, "permission", permission)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !decision.Allowed {
				http.Error(w, "Forbidden: "+string(decision.Reason), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireEntry gates a route on the coarse resource map only, for
// screens with no finer capability semantics.
func (g *Guard) RequireEntry(resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := session.ActorFromContext(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !g.evaluator.CanEnter(resource, actor) {
				g.logger.Warn("access denied at resource gate",
					"resource", resource, "role", actor.Role, "user_id", actor.UserID)
				http.Error(w, "Forbidden: resource_forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
