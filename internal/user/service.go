package user

import (
	"log/slog"

	"github.com/SamridhiParajuli/store-dashboard/internal"
	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	List(departmentID *int64) ([]User, error)
	GetByID(id int64) (*User, error)
	Create(u *User, passwordHash string) error
	SetActive(id int64, active bool) error
}

type Service struct {
	repo       RepositoryAPI
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// List returns user accounts, scoped: non-admin callers only see
// accounts in their own department.
func (s *Service) List(params authz.QueryParams, actor authz.Actor) ([]User, error) {
	scoped := authz.ScopeQuery(params, actor)

	users, err := s.repo.List(scoped.DepartmentID)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewUnavailableError("could not list users", err)
	}
	return authz.ScopeCollection(users, actor), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewUnavailableError("could not load user", err)
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) Create(u User, password string) (*User, error) {
	if _, err := authz.ParseRole(u.Role); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("could not hash password", err)
	}

	if err := s.repo.Create(&u, string(hash)); err != nil {
		s.logger.Error("failed to create user", "username", u.Username, "error", err)
		return nil, internal.NewUnavailableError("could not create user", err)
	}
	s.logger.Info("user created", "id", u.ID, "username", u.Username, "role", u.Role)
	return &u, nil
}

func (s *Service) SetActive(id int64, active bool) error {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewUnavailableError("could not load user", err)
	}
	if u == nil {
		return internal.ErrUserNotFound
	}
	if err := s.repo.SetActive(id, active); err != nil {
		return internal.NewUnavailableError("could not update user", err)
	}
	return nil
}
