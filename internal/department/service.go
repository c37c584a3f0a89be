package department

import (
	"log/slog"
	"time"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	departmentDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/department"
)

type RepositoryAPI interface {
	GetAll() ([]*departmentDatamodel.Department, error)
	GetByID(id int64) (*departmentDatamodel.Department, error)
	Create(d *departmentDatamodel.Department) error
	Update(d *departmentDatamodel.Department) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAll() ([]*Department, error) {
	models, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get departments", "error", err)
		return nil, internal.NewUnavailableError("could not list departments", err)
	}

	departments := make([]*Department, 0, len(models))
	for _, m := range models {
		departments = append(departments, FromDataModel(m))
	}
	return departments, nil
}

func (s *Service) GetByID(id int64) (*Department, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("could not load department", err)
	}
	if m == nil {
		return nil, internal.ErrDepartmentNotFound
	}
	return FromDataModel(m), nil
}

func (s *Service) Create(name, code, description string) (*Department, error) {
	d := NewDepartment(name, code, description)
	m := ToDataModel(d)
	if err := s.repo.Create(m); err != nil {
		s.logger.Error("failed to create department", "name", name, "error", err)
		return nil, internal.NewUnavailableError("could not create department", err)
	}
	s.logger.Info("department created", "id", m.ID, "name", name)
	return FromDataModel(m), nil
}

func (s *Service) Update(id int64, name, code, description string, managerID *int64, isActive bool) (*Department, error) {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("could not load department", err)
	}
	if m == nil {
		return nil, internal.ErrDepartmentNotFound
	}

	m.Name = name
	m.DepartmentCode = code
	m.Description = description
	m.ManagerID = managerID
	m.IsActive = isActive
	m.UpdatedAt = time.Now()

	if err := s.repo.Update(m); err != nil {
		s.logger.Error("failed to update department", "id", id, "error", err)
		return nil, internal.NewUnavailableError("could not update department", err)
	}
	return FromDataModel(m), nil
}

func (s *Service) Delete(id int64) error {
	m, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewUnavailableError("could not load department", err)
	}
	if m == nil {
		return internal.ErrDepartmentNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete department", "id", id, "error", err)
		return internal.NewUnavailableError("could not delete department", err)
	}
	return nil
}
