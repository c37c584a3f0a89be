package postgres

import (
	"errors"
	"time"

	userDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/user"
	"github.com/SamridhiParajuli/store-dashboard/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(departmentID *int64) ([]user.User, error) {
	query := r.db.Model(&userDatamodel.User{}).Order("username ASC")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}

	var models []*userDatamodel.User
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	users := make([]user.User, 0, len(models))
	for _, m := range models {
		users = append(users, user.FromDataModel(m))
	}
	return users, nil
}

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	var m userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	u := user.FromDataModel(&m)
	return &u, nil
}

func (r *UserRepository) Create(u *user.User, passwordHash string) error {
	now := time.Now()
	m := userDatamodel.User{
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: passwordHash,
		Role:         u.Role,
		DepartmentID: u.DepartmentID,
		EmployeeID:   u.EmployeeID,
		IsActive:     u.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := r.db.Create(&m).Error; err != nil {
		return err
	}
	*u = user.FromDataModel(&m)
	return nil
}

func (r *UserRepository) SetActive(id int64, active bool) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()}).Error
}
