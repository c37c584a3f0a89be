package session

import "time"

// Session is the persisted login snapshot used to rehydrate the actor
// on process start.
type Session struct {
	ID           string    `gorm:"primaryKey;column:id"`
	UserID       int64     `gorm:"column:user_id;not null;index"`
	Role         string    `gorm:"column:role;not null"`
	DepartmentID *int64    `gorm:"column:department_id"`
	EmployeeID   *int64    `gorm:"column:employee_id"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Session) TableName() string {
	return "sessions"
}
