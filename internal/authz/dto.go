package authz

import (
	"errors"
	"strings"
)

type CreatePermissionDTO struct {
	Name        string `json:"permission_name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

func (d *CreatePermissionDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return errors.New("permission_name is required")
	}
	if strings.ContainsAny(d.Name, " \t") {
		return errors.New("permission_name must not contain whitespace")
	}
	return nil
}

type UpdatePermissionDTO struct {
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

func (d *UpdatePermissionDTO) Validate() error {
	if d.Description == nil && d.Category == nil {
		return errors.New("at least one field must be provided")
	}
	return nil
}

type SetCapabilityDTO struct {
	Role         string `json:"role"`
	PermissionID int64  `json:"permission_id"`
	Capability   string `json:"capability"`
	Value        bool   `json:"value"`
}

func (d *SetCapabilityDTO) Validate() error {
	if _, err := ParseRole(d.Role); err != nil {
		return err
	}
	if d.PermissionID <= 0 {
		return errors.New("permission_id is required")
	}
	if _, err := ParseCapability(d.Capability); err != nil {
		return err
	}
	return nil
}

type RolePermissionResponse struct {
	PermissionID   int64  `json:"permission_id"`
	PermissionName string `json:"permission_name"`
	CanView        bool   `json:"can_view"`
	CanCreate      bool   `json:"can_create"`
	CanEdit        bool   `json:"can_edit"`
	CanDelete      bool   `json:"can_delete"`
}

type RoleMatrixResponse struct {
	Roles map[Role][]RolePermissionResponse `json:"roles"`
}
