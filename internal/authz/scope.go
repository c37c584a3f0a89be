package authz

// QueryParams is the typed filter set accepted by list endpoints.
// Scoping reasons about the department constraint as a nullable field
// instead of probing an open parameter map.
type QueryParams struct {
	DepartmentID *int64 `json:"department_id,omitempty"`
	AssignedTo   *int64 `json:"assigned_to,omitempty"`
	Status       string `json:"status,omitempty"`
	IsUrgent     *bool  `json:"is_urgent,omitempty"`
	Search       string `json:"search,omitempty"`
	Sort         string `json:"sort,omitempty"`
	Order        string `json:"order,omitempty"`
	Limit        int    `json:"limit,omitempty"`
	Offset       int    `json:"offset,omitempty"`
}

// DepartmentScoped is any record carrying an optional department
// reference. The engine filters such records; it does not own them.
type DepartmentScoped interface {
	DepartmentRef() *int64
}

// ScopeQuery narrows query parameters to what the actor may see.
// Admins query unrestricted. Everyone else, managers included, is
// pinned to their own department: a requested constraint that differs
// from the actor's department is overwritten, never honored.
func ScopeQuery(params QueryParams, actor Actor) QueryParams {
	if actor.IsAdmin() {
		return params
	}

	scoped := params
	if actor.DepartmentID != nil {
		dept := *actor.DepartmentID
		scoped.DepartmentID = &dept
		return scoped
	}

	// Actor without a department may not pin the query to someone
	// else's; the constraint is dropped rather than honored.
	scoped.DepartmentID = nil
	return scoped
}

// ScopeCollection filters an in-memory result set. Non-admins keep
// records with no department, or with their own.
func ScopeCollection[T DepartmentScoped](records []T, actor Actor) []T {
	if actor.IsAdmin() {
		return records
	}

	filtered := make([]T, 0, len(records))
	for _, rec := range records {
		dept := rec.DepartmentRef()
		if dept == nil {
			filtered = append(filtered, rec)
			continue
		}
		if actor.DepartmentID != nil && *dept == *actor.DepartmentID {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// CanAccessDepartment reports whether the actor may touch records of
// the given department. Managers are checked exactly like staff: a
// manager's authority covers one department, their own.
func CanAccessDepartment(departmentID int64, actor Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.DepartmentID != nil && *actor.DepartmentID == departmentID
}
