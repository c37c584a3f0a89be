package task

import (
	"time"

	taskDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/task"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID                   int64      `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	DepartmentID         *int64     `json:"department_id,omitempty"`
	AssignedBy           int64      `json:"assigned_by"`
	AssignedTo           *int64     `json:"assigned_to,omitempty"`
	AssignedToDepartment *int64     `json:"assigned_to_department,omitempty"`
	IsUrgent             bool       `json:"is_urgent"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	Status               string     `json:"status"`
	IsCompleted          bool       `json:"is_completed"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// DepartmentRef satisfies authz.DepartmentScoped.
func (t Task) DepartmentRef() *int64 {
	return t.DepartmentID
}

func (t *Task) Complete() {
	t.Status = StatusCompleted
	t.IsCompleted = true
	t.UpdatedAt = time.Now()
}

func FromDataModel(m *taskDatamodel.Task) Task {
	return Task{
		ID:                   m.ID,
		Title:                m.Title,
		Description:          m.Description,
		DepartmentID:         m.DepartmentID,
		AssignedBy:           m.AssignedBy,
		AssignedTo:           m.AssignedTo,
		AssignedToDepartment: m.AssignedToDepartment,
		IsUrgent:             m.IsUrgent,
		DueDate:              m.DueDate,
		Status:               m.Status,
		IsCompleted:          m.IsCompleted,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func ToDataModel(t *Task) *taskDatamodel.Task {
	return &taskDatamodel.Task{
		ID:                   t.ID,
		Title:                t.Title,
		Description:          t.Description,
		DepartmentID:         t.DepartmentID,
		AssignedBy:           t.AssignedBy,
		AssignedTo:           t.AssignedTo,
		AssignedToDepartment: t.AssignedToDepartment,
		IsUrgent:             t.IsUrgent,
		DueDate:              t.DueDate,
		Status:               t.Status,
		IsCompleted:          t.IsCompleted,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}
