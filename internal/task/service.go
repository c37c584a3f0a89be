package task

import (
	"log/slog"
	"time"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
)

type RepositoryAPI interface {
	List(params authz.QueryParams) ([]Task, int64, error)
	GetByID(id int64) (*Task, error)
	Create(t *Task) error
	Update(t *Task) error
	Delete(id int64) error
}

// EvaluatorAPI is the slice of the authorization engine the task
// service consumes.
type EvaluatorAPI interface {
	Decide(resourceName, permissionName string, action authz.Capability, actor authz.Actor) (authz.Decision, error)
	CanAccessDepartment(departmentID int64, actor authz.Actor) bool
}

const (
	resourceName   = "tasks"
	permissionName = "task_management"
)

type Service struct {
	repo      RepositoryAPI
	evaluator EvaluatorAPI
	logger    *slog.Logger
}

func NewService(repo RepositoryAPI, evaluator EvaluatorAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		evaluator: evaluator,
		logger:    logger,
	}
}

// List applies the full decision chain: capability gate, query
// scoping, then a second in-memory scope pass over the results.
func (s *Service) List(params authz.QueryParams, actor authz.Actor) (*ListResponse, error) {
	decision, err := s.evaluator.Decide(resourceName, permissionName, authz.CapabilityView, actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, denyError(decision)
	}

	scoped := authz.ScopeQuery(params, actor)
	if scoped.Limit <= 0 {
		scoped.Limit = 20
	}

	tasks, total, err := s.repo.List(scoped)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, internal.NewUnavailableError("could not list tasks", err)
	}

	// Scope again in memory so records the query could not constrain
	// (nil-department rows aside) never leak across departments.
	tasks = authz.ScopeCollection(tasks, actor)

	return &ListResponse{
		Items: tasks,
		Pagination: Pagination{
			Total:   total,
			Limit:   scoped.Limit,
			Offset:  scoped.Offset,
			HasMore: int64(scoped.Offset+scoped.Limit) < total,
		},
	}, nil
}

func (s *Service) Get(id int64, actor authz.Actor) (*Task, error) {
	decision, err := s.evaluator.Decide(resourceName, permissionName, authz.CapabilityView, actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, denyError(decision)
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("could not load task", err)
	}
	if t == nil {
		return nil, internal.ErrTaskNotFound
	}

	if t.DepartmentID != nil && !s.evaluator.CanAccessDepartment(*t.DepartmentID, actor) {
		return nil, internal.ErrDepartmentForbidden
	}
	return t, nil
}

func (s *Service) Create(dto CreateTaskDTO, actor authz.Actor) (*Task, error) {
	decision, err := s.evaluator.Decide(resourceName, permissionName, authz.CapabilityCreate, actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, denyError(decision)
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	if dto.DepartmentID != nil && !s.evaluator.CanAccessDepartment(*dto.DepartmentID, actor) {
		return nil, internal.ErrDepartmentForbidden
	}

	now := time.Now()
	t := &Task{
		Title:                dto.Title,
		Description:          dto.Description,
		DepartmentID:         dto.DepartmentID,
		AssignedBy:           actor.UserID,
		AssignedTo:           dto.AssignedTo,
		AssignedToDepartment: dto.AssignedToDepartment,
		IsUrgent:             dto.IsUrgent,
		DueDate:              dto.DueDate,
		Status:               dto.Status,
		IsCompleted:          dto.Status == StatusCompleted,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(t); err != nil {
		s.logger.Error("failed to create task", "error", err)
		return nil, internal.NewUnavailableError("could not create task", err)
	}

	s.logger.Info("task created", "task_id", t.ID, "by", actor.UserID)
	return t, nil
}

func (s *Service) Update(id int64, dto UpdateTaskDTO, actor authz.Actor) (*Task, error) {
	decision, err := s.evaluator.Decide(resourceName, permissionName, authz.CapabilityEdit, actor)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, denyError(decision)
	}
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("could not load task", err)
	}
	if t == nil {
		return nil, internal.ErrTaskNotFound
	}
	if t.DepartmentID != nil && !s.evaluator.CanAccessDepartment(*t.DepartmentID, actor) {
		return nil, internal.ErrDepartmentForbidden
	}

	if dto.Title != nil {
		t.Title = *dto.Title
	}
	if dto.Description != nil {
		t.Description = *dto.Description
	}
	if dto.AssignedTo != nil {
		t.AssignedTo = dto.AssignedTo
	}
	if dto.IsUrgent != nil {
		t.IsUrgent = *dto.IsUrgent
	}
	if dto.DueDate != nil {
		t.DueDate = dto.DueDate
	}
	if dto.Status != nil {
		t.Status = *dto.Status
		t.IsCompleted = *dto.Status == StatusCompleted
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Update(t); err != nil {
		s.logger.Error("failed to update task", "task_id", id, "error", err)
		return nil, internal.NewUnavailableError("could not update task", err)
	}
	return t, nil
}

func (s *Service) Delete(id int64, actor authz.Actor) error {
	decision, err := s.evaluator.Decide(resourceName, permissionName, authz.CapabilityDelete, actor)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return denyError(decision)
	}

	t, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewUnavailableError("could not load task", err)
	}
	if t == nil {
		return internal.ErrTaskNotFound
	}
	if t.DepartmentID != nil && !s.evaluator.CanAccessDepartment(*t.DepartmentID, actor) {
		return internal.ErrDepartmentForbidden
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete task", "task_id", id, "error", err)
		return internal.NewUnavailableError("could not delete task", err)
	}
	return nil
}

// denyError turns a deny decision into the explicit "not permitted"
// error the UI renders; a denial is never a silent empty result.
func denyError(d authz.Decision) error {
	if d.Reason == authz.DenyResourceForbidden {
		return internal.NewForbiddenError("not permitted to access this resource", internal.ErrCodeResourceForbidden)
	}
	return internal.NewForbiddenError("not permitted to perform this action", internal.ErrCodeCapabilityDenied)
}
