package authz

import (
	"log/slog"

	"github.com/SamridhiParajuli/store-dashboard/internal"
)

// Evaluator composes the static resource map, the role-permission
// matrix and the catalog into the single decision API every guard and
// list-fetch call site uses. All operations are synchronous reads over
// already-loaded state.
type Evaluator struct {
	resources ResourceMap
	matrix    *Matrix
	catalog   *Catalog
	logger    *slog.Logger
}

func NewEvaluator(resources ResourceMap, matrix *Matrix, catalog *Catalog, logger *slog.Logger) *Evaluator {
	return &Evaluator{
		resources: resources,
		matrix:    matrix,
		catalog:   catalog,
		logger:    logger,
	}
}

// CanEnter is the coarse screen gate.
func (e *Evaluator) CanEnter(resourceName string, actor Actor) bool {
	return e.resources.CanEnter(resourceName, actor)
}

// CanPerform checks one capability against the matrix. Admin gets no
// shortcut here: fine-grained checks are data-driven for every role.
// An unknown permission name is a caller bug and surfaces as an error,
// not a deny.
func (e *Evaluator) CanPerform(permissionName string, action Capability, actor Actor) (bool, error) {
	perm, ok := e.catalog.GetByName(permissionName)
	if !ok {
		e.logger.Error("capability check against unknown permission",
			"permission", permissionName, "role", actor.Role)
		return false, internal.ErrUnknownPermission
	}
	return e.matrix.Get(actor.Role, perm.ID).Allows(action), nil
}

// Decide composes CanEnter then CanPerform.
func (e *Evaluator) Decide(resourceName, permissionName string, action Capability, actor Actor) (Decision, error) {
	if !e.CanEnter(resourceName, actor) {
		e.logger.Warn("access denied at resource gate",
			"resource", resourceName, "role", actor.Role, "user_id", actor.UserID)
		return Deny(DenyResourceForbidden), nil
	}

	allowed, err := e.CanPerform(permissionName, action, actor)
	if err != nil {
		return Decision{}, err
	}
	if !allowed {
		e.logger.Warn("access denied at capability check",
			"resource", resourceName, "permission", permissionName,
			"action", action, "role", actor.Role, "user_id", actor.UserID)
		return Deny(DenyCapabilityDenied), nil
	}
	return Allow(), nil
}

// ScopeQuery, ScopeCollection and CanAccessDepartment are exposed as
// package functions (scope.go); the evaluator re-exports the query
// variant for call sites that already hold an evaluator.
func (e *Evaluator) ScopeQuery(params QueryParams, actor Actor) QueryParams {
	return ScopeQuery(params, actor)
}

func (e *Evaluator) CanAccessDepartment(departmentID int64, actor Actor) bool {
	return CanAccessDepartment(departmentID, actor)
}
