package task

import (
	"errors"
	"strings"
	"time"
)

type CreateTaskDTO struct {
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	DepartmentID         *int64     `json:"department_id,omitempty"`
	AssignedTo           *int64     `json:"assigned_to,omitempty"`
	AssignedToDepartment *int64     `json:"assigned_to_department,omitempty"`
	IsUrgent             bool       `json:"is_urgent"`
	DueDate              *time.Time `json:"due_date,omitempty"`
	Status               string     `json:"status,omitempty"`
}

func (d *CreateTaskDTO) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return errors.New("title is required")
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
	switch d.Status {
	case StatusPending, StatusInProgress, StatusCompleted:
	default:
		return errors.New("invalid status")
	}
	return nil
}

type UpdateTaskDTO struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	AssignedTo  *int64     `json:"assigned_to,omitempty"`
	IsUrgent    *bool      `json:"is_urgent,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

func (d *UpdateTaskDTO) Validate() error {
	if d.Status != nil {
		switch *d.Status {
		case StatusPending, StatusInProgress, StatusCompleted:
		default:
			return errors.New("invalid status")
		}
	}
	return nil
}

type Pagination struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

type ListResponse struct {
	Items      []Task     `json:"items"`
	Pagination Pagination `json:"pagination"`
}
