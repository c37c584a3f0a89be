package authz

// ResourceMap is the coarse screen-level gate: resource name to the
// roles allowed to enter. Immutable configuration, defined once at
// process start.
type ResourceMap map[string][]Role

// DefaultResourceMap mirrors the dashboard's screens. Screens absent
// from the map are admin-only until explicitly opened.
func DefaultResourceMap() ResourceMap {
	return ResourceMap{
		"users":         {RoleAdmin},
		"permissions":   {RoleAdmin},
		"employees":     {RoleAdmin, RoleManager},
		"departments":   {RoleAdmin, RoleManager},
		"reminders":     {RoleAdmin, RoleManager, RoleLead},
		"tasks":         {RoleAdmin, RoleManager, RoleLead, RoleStaff},
		"complaints":    {RoleAdmin, RoleManager, RoleLead, RoleStaff},
		"preorders":     {RoleAdmin, RoleManager, RoleLead, RoleStaff},
		"inventory":     {RoleAdmin, RoleManager, RoleLead, RoleStaff},
		"equipment":     {RoleAdmin, RoleManager, RoleLead, RoleStaff},
		"temperature":   {RoleAdmin, RoleManager, RoleLead, RoleStaff},
		"training":      {RoleAdmin, RoleManager, RoleLead, RoleStaff},
		"announcements": {RoleAdmin, RoleManager, RoleLead, RoleStaff},
	}
}

// CanEnter is the first gate before any matrix or department check.
// Admin enters everything; an unlisted resource stays closed to
// everyone else.
func (m ResourceMap) CanEnter(resourceName string, actor Actor) bool {
	if actor.IsAdmin() {
		return true
	}
	roles, ok := m[resourceName]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == actor.Role {
			return true
		}
	}
	return false
}
