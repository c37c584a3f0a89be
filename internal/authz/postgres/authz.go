package postgres

import (
	"errors"
	"time"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	permissionDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/permission"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) authz.PermissionRepository {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetAll() ([]authz.Permission, error) {
	var models []*permissionDatamodel.Permission
	if err := r.db.Order("permission_name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	perms := make([]authz.Permission, 0, len(models))
	for _, m := range models {
		perms = append(perms, authz.PermissionFromDataModel(m))
	}
	return perms, nil
}

func (r *PermissionRepository) GetByID(id int64) (*authz.Permission, error) {
	var m permissionDatamodel.Permission
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	perm := authz.PermissionFromDataModel(&m)
	return &perm, nil
}

func (r *PermissionRepository) GetByName(name string) (*authz.Permission, error) {
	var m permissionDatamodel.Permission
	if err := r.db.Where("permission_name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	perm := authz.PermissionFromDataModel(&m)
	return &perm, nil
}

func (r *PermissionRepository) Create(p *authz.Permission) error {
	m := authz.PermissionToDataModel(*p)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*p = authz.PermissionFromDataModel(m)
	return nil
}

func (r *PermissionRepository) Update(p *authz.Permission) error {
	return r.db.Model(&permissionDatamodel.Permission{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"description": p.Description,
			"category":    p.Category,
			"updated_at":  time.Now(),
		}).Error
}

// DeleteCascade removes the permission and its role grants in one
// transaction. A partially applied cascade never commits.
func (r *PermissionRepository) DeleteCascade(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).
			Delete(&permissionDatamodel.RolePermission{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&permissionDatamodel.Permission{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

type RolePermissionRepository struct {
	db *gorm.DB
}

func NewRolePermissionRepository(db *gorm.DB) authz.RolePermissionRepository {
	return &RolePermissionRepository{db: db}
}

func (r *RolePermissionRepository) GetForRole(role authz.Role) ([]authz.RolePermission, error) {
	var models []*permissionDatamodel.RolePermission
	if err := r.db.Where("role = ?", role).Find(&models).Error; err != nil {
		return nil, err
	}

	rows := make([]authz.RolePermission, 0, len(models))
	for _, m := range models {
		rows = append(rows, authz.RolePermissionFromDataModel(m))
	}
	return rows, nil
}

// Upsert flips exactly one capability column for the (role,
// permission_id) pair in a single statement; the conflict target is
// the pair's unique index, so a repeat grant overwrites instead of
// duplicating.
func (r *RolePermissionRepository) Upsert(role authz.Role, permissionID int64, capability authz.Capability, value bool) (authz.RolePermission, error) {
	column, err := capabilityColumn(capability)
	if err != nil {
		return authz.RolePermission{}, err
	}

	now := time.Now()
	row := permissionDatamodel.RolePermission{
		Role:         string(role),
		PermissionID: permissionID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch capability {
	case authz.CapabilityView:
		row.CanView = value
	case authz.CapabilityCreate:
		row.CanCreate = value
	case authz.CapabilityEdit:
		row.CanEdit = value
	case authz.CapabilityDelete:
		row.CanDelete = value
	}

	err = r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "role"}, {Name: "permission_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       value,
			"updated_at": now,
		}),
	}).Create(&row).Error
	if err != nil {
		return authz.RolePermission{}, err
	}

	// Re-read so the caller sees the merged row, not just the insert
	// attempt (the conflict path keeps the other three flags).
	var current permissionDatamodel.RolePermission
	if err := r.db.Where("role = ? AND permission_id = ?", role, permissionID).
		First(&current).Error; err != nil {
		return authz.RolePermission{}, err
	}
	return authz.RolePermissionFromDataModel(&current), nil
}

func capabilityColumn(c authz.Capability) (string, error) {
	switch c {
	case authz.CapabilityView:
		return "can_view", nil
	case authz.CapabilityCreate:
		return "can_create", nil
	case authz.CapabilityEdit:
		return "can_edit", nil
	case authz.CapabilityDelete:
		return "can_delete", nil
	}
	return "", errors.New("unknown capability")
}
