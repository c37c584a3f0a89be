package department

import (
	"time"

	departmentDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/department"
)

type Department struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	DepartmentCode string    `json:"department_code,omitempty"`
	Description    string    `json:"description,omitempty"`
	ManagerID      *int64    `json:"manager_id,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewDepartment(name, code, description string) *Department {
	now := time.Now()
	return &Department{
		Name:           name,
		DepartmentCode: code,
		Description:    description,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func FromDataModel(m *departmentDatamodel.Department) *Department {
	return &Department{
		ID:             m.ID,
		Name:           m.Name,
		DepartmentCode: m.DepartmentCode,
		Description:    m.Description,
		ManagerID:      m.ManagerID,
		IsActive:       m.IsActive,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func ToDataModel(d *Department) *departmentDatamodel.Department {
	return &departmentDatamodel.Department{
		ID:             d.ID,
		Name:           d.Name,
		DepartmentCode: d.DepartmentCode,
		Description:    d.Description,
		ManagerID:      d.ManagerID,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
