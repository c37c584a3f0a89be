package postgres

import (
	"errors"
	"strings"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	taskDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/task"
	"github.com/SamridhiParajuli/store-dashboard/internal/task"
	"gorm.io/gorm"
)

// sortColumns whitelists sortable fields; anything else falls back to
// created_at.
var sortColumns = map[string]string{
	"created_at": "created_at",
	"due_date":   "due_date",
	"title":      "title",
	"status":     "status",
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) task.RepositoryAPI {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(params authz.QueryParams) ([]task.Task, int64, error) {
	query := r.db.Model(&taskDatamodel.Task{})

	if params.DepartmentID != nil {
		query = query.Where("department_id = ?", *params.DepartmentID)
	}
	if params.AssignedTo != nil {
		query = query.Where("assigned_to = ?", *params.AssignedTo)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.IsUrgent != nil {
		query = query.Where("is_urgent = ?", *params.IsUrgent)
	}
	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[params.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(params.Order, "asc") {
		direction = "ASC"
	}
	query = query.Order(column + " " + direction)

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}

	var models []*taskDatamodel.Task
	if err := query.Find(&models).Error; err != nil {
		return nil, 0, err
	}

	tasks := make([]task.Task, 0, len(models))
	for _, m := range models {
		tasks = append(tasks, task.FromDataModel(m))
	}
	return tasks, total, nil
}

func (r *TaskRepository) GetByID(id int64) (*task.Task, error) {
	var m taskDatamodel.Task
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	t := task.FromDataModel(&m)
	return &t, nil
}

func (r *TaskRepository) Create(t *task.Task) error {
	m := task.ToDataModel(t)
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	*t = task.FromDataModel(m)
	return nil
}

func (r *TaskRepository) Update(t *task.Task) error {
	return r.db.Save(task.ToDataModel(t)).Error
}

func (r *TaskRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&taskDatamodel.Task{}).Error
}
