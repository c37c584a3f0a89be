package authz

import (
	"fmt"
	"time"

	permissionDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/permission"
)

// Role is the closed set of dashboard roles. Roles are not stored as
// data; they key the role-permission matrix and the resource map.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleLead    Role = "lead"
	RoleStaff   Role = "staff"
)

// AllRoles returns the roles in their fixed order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleLead, RoleStaff}
}

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleLead, RoleStaff:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Capability is one of the four independently grantable action flags
// on a role-permission row.
type Capability string

const (
	CapabilityView   Capability = "view"
	CapabilityCreate Capability = "create"
	CapabilityEdit   Capability = "edit"
	CapabilityDelete Capability = "delete"
)

func ParseCapability(s string) (Capability, error) {
	switch Capability(s) {
	case CapabilityView, CapabilityCreate, CapabilityEdit, CapabilityDelete:
		return Capability(s), nil
	}
	return "", fmt.Errorf("unknown capability: %q", s)
}

// Actor is the authenticated caller's snapshot used for every
// authorization decision. The session context is the only component
// that constructs or replaces it.
type Actor struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	DepartmentID *int64 `json:"department_id,omitempty"`
	EmployeeID   *int64 `json:"employee_id,omitempty"`
	IsActive     bool   `json:"is_active"`
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Permission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"permission_name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RolePermission carries the four capability flags for one
// (role, permission) pair. A row that was never granted simply does
// not exist; Matrix.Get synthesizes an all-false row for it.
type RolePermission struct {
	ID           int64 `json:"id,omitempty"`
	Role         Role  `json:"role"`
	PermissionID int64 `json:"permission_id"`
	CanView      bool  `json:"can_view"`
	CanCreate    bool  `json:"can_create"`
	CanEdit      bool  `json:"can_edit"`
	CanDelete    bool  `json:"can_delete"`
}

// Allows reports whether the row grants the named capability.
func (rp RolePermission) Allows(c Capability) bool {
	switch c {
	case CapabilityView:
		return rp.CanView
	case CapabilityCreate:
		return rp.CanCreate
	case CapabilityEdit:
		return rp.CanEdit
	case CapabilityDelete:
		return rp.CanDelete
	}
	return false
}

// DenyReason is a terminal decision outcome, not an error.
type DenyReason string

const (
	DenyResourceForbidden DenyReason = "resource_forbidden"
	DenyCapabilityDenied  DenyReason = "capability_denied"
)

type Decision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"reason,omitempty"`
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func PermissionFromDataModel(p *permissionDatamodel.Permission) Permission {
	return Permission{
		ID:          p.ID,
		Name:        p.PermissionName,
		Description: p.Description,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func PermissionToDataModel(p Permission) *permissionDatamodel.Permission {
	return &permissionDatamodel.Permission{
		ID:             p.ID,
		PermissionName: p.Name,
		Description:    p.Description,
		Category:       p.Category,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func RolePermissionFromDataModel(rp *permissionDatamodel.RolePermission) RolePermission {
	return RolePermission{
		ID:           rp.ID,
		Role:         Role(rp.Role),
		PermissionID: rp.PermissionID,
		CanView:      rp.CanView,
		CanCreate:    rp.CanCreate,
		CanEdit:      rp.CanEdit,
		CanDelete:    rp.CanDelete,
	}
}
