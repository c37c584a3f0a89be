package user

import (
	"time"

	userDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/user"
)

// User is the account record rendered by the admin screen. The
// password hash never leaves the repository layer.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	DepartmentID *int64    `json:"department_id,omitempty"`
	EmployeeID   *int64    `json:"employee_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DepartmentRef satisfies authz.DepartmentScoped.
func (u User) DepartmentRef() *int64 {
	return u.DepartmentID
}

func FromDataModel(m *userDatamodel.User) User {
	return User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		Name:         m.Name,
		Role:         m.Role,
		DepartmentID: m.DepartmentID,
		EmployeeID:   m.EmployeeID,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
