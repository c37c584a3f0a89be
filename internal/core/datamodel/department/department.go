package department

import "time"

type Department struct {
	ID             int64     `gorm:"primaryKey"`
	Name           string    `gorm:"column:name;uniqueIndex;not null"`
	DepartmentCode string    `gorm:"column:department_code"`
	Description    string    `gorm:"column:description"`
	ManagerID      *int64    `gorm:"column:manager_id"`
	IsActive       bool      `gorm:"column:is_active;default:true"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
