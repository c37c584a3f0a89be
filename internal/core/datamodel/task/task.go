package task

import "time"

type Task struct {
	ID                   int64      `gorm:"primaryKey"`
	Title                string     `gorm:"column:title;not null"`
	Description          string     `gorm:"column:description"`
	DepartmentID         *int64     `gorm:"column:department_id"`
	AssignedBy           int64      `gorm:"column:assigned_by;not null"`
	AssignedTo           *int64     `gorm:"column:assigned_to"`
	AssignedToDepartment *int64     `gorm:"column:assigned_to_department"`
	IsUrgent             bool       `gorm:"column:is_urgent;default:false"`
	DueDate              *time.Time `gorm:"column:due_date"`
	Status               string     `gorm:"column:status;default:pending"`
	IsCompleted          bool       `gorm:"column:is_completed;default:false"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
