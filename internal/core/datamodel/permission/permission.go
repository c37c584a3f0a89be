package permission

import "time"

type Permission struct {
	ID             int64     `gorm:"primaryKey"`
	PermissionName string    `gorm:"column:permission_name;uniqueIndex;not null"`
	Description    string    `gorm:"column:description"`
	Category       string    `gorm:"column:category"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

// RolePermission is unique under (role, permission_id); a repeat grant
// for the same pair overwrites the existing row.
type RolePermission struct {
	ID           int64     `gorm:"primaryKey"`
	Role         string    `gorm:"column:role;not null;uniqueIndex:idx_role_permission"`
	PermissionID int64     `gorm:"column:permission_id;not null;uniqueIndex:idx_role_permission"`
	CanView      bool      `gorm:"column:can_view;default:false"`
	CanCreate    bool      `gorm:"column:can_create;default:false"`
	CanEdit      bool      `gorm:"column:can_edit;default:false"`
	CanDelete    bool      `gorm:"column:can_delete;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
