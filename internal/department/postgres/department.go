package postgres

import (
	"errors"

	departmentDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/department"
	"github.com/SamridhiParajuli/store-dashboard/internal/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.RepositoryAPI {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) GetAll() ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *DepartmentRepository) GetByID(id int64) (*departmentDatamodel.Department, error) {
	var d departmentDatamodel.Department
	if err := r.db.Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentRepository) Create(d *departmentDatamodel.Department) error {
	return r.db.Create(d).Error
}

func (r *DepartmentRepository) Update(d *departmentDatamodel.Department) error {
	return r.db.Save(d).Error
}

func (r *DepartmentRepository) Delete(id int64) error {
	return r.db.Model(&departmentDatamodel.Department{}).
		Where("id = ?", id).Update("is_active", false).Error
}
