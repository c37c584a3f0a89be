package authz

import (
	"context"
	"log/slog"
)

// Service is the administrative entry point over the catalog and the
// matrix. Mutations go through here so cached state stays consistent
// with storage (permission delete evicts cascaded grants).
type Service struct {
	catalog *Catalog
	matrix  *Matrix
	logger  *slog.Logger
}

func NewService(catalog *Catalog, matrix *Matrix, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		matrix:  matrix,
		logger:  logger,
	}
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

func (s *Service) Matrix() *Matrix {
	return s.matrix
}

// Load hydrates catalog and matrix. Catalog failure is fatal to the
// load; matrix failures degrade per role.
func (s *Service) Load(ctx context.Context) ([]RoleLoadWarning, error) {
	if err := s.catalog.Load(); err != nil {
		return nil, err
	}
	warnings := s.matrix.LoadAll(ctx, AllRoles())
	for _, w := range warnings {
		s.logger.Warn("role grants unavailable this session", "role", w.Role, "error", w.Err)
	}
	return warnings, nil
}

func (s *Service) ListPermissions(filter ListFilter) []Permission {
	return s.catalog.List(filter)
}

func (s *Service) CreatePermission(name, description, category string) (Permission, error) {
	return s.catalog.Create(name, description, category)
}

func (s *Service) UpdatePermission(id int64, fields UpdateFields) (Permission, error) {
	return s.catalog.Update(id, fields)
}

// DeletePermission removes a permission and its role grants, then
// drops the cascaded rows from the in-memory matrix.
func (s *Service) DeletePermission(id int64) error {
	if err := s.catalog.Delete(id); err != nil {
		return err
	}
	s.matrix.EvictPermission(id)
	return nil
}

func (s *Service) ListForRole(role Role) []RolePermission {
	return s.matrix.ListForRole(role)
}

// MatrixByRole returns every role's full permission sheet, keyed by
// role name, for the admin matrix screen.
func (s *Service) MatrixByRole() map[Role][]RolePermission {
	sheet := make(map[Role][]RolePermission, len(AllRoles()))
	for _, role := range AllRoles() {
		sheet[role] = s.matrix.ListForRole(role)
	}
	return sheet
}

func (s *Service) SetCapability(role Role, permissionID int64, capability Capability, value bool) (RolePermission, error) {
	return s.matrix.SetCapability(role, permissionID, capability, value)
}
