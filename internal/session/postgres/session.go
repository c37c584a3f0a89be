package postgres

import (
	"errors"
	"time"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	sessionDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/session"
	userDatamodel "github.com/SamridhiParajuli/store-dashboard/internal/core/datamodel/user"
	"github.com/SamridhiParajuli/store-dashboard/internal/session"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) session.UserRepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetCredentials(username string) (*session.Credentials, error) {
	var u userDatamodel.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session.Credentials{
		Actor:        actorFromUser(&u),
		PasswordHash: u.PasswordHash,
	}, nil
}

func (r *UserRepository) GetActor(userID int64) (*authz.Actor, error) {
	var u userDatamodel.User
	if err := r.db.Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	actor := actorFromUser(&u)
	return &actor, nil
}

func actorFromUser(u *userDatamodel.User) authz.Actor {
	return authz.Actor{
		UserID:       u.ID,
		Username:     u.Username,
		Role:         authz.Role(u.Role),
		DepartmentID: u.DepartmentID,
		EmployeeID:   u.EmployeeID,
		IsActive:     u.IsActive,
	}
}

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.SessionRepositoryAPI {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Save(s session.PersistedSession) error {
	model := sessionDatamodel.Session{
		ID:           s.ID,
		UserID:       s.Actor.UserID,
		Role:         string(s.Actor.Role),
		DepartmentID: s.Actor.DepartmentID,
		EmployeeID:   s.Actor.EmployeeID,
		ExpiresAt:    s.ExpiresAt,
		CreatedAt:    time.Now(),
	}
	return r.db.Create(&model).Error
}

func (r *SessionRepository) GetLatest() (*session.PersistedSession, error) {
	var model sessionDatamodel.Session
	err := r.db.Order("created_at DESC").First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session.PersistedSession{
		ID: model.ID,
		Actor: authz.Actor{
			UserID:       model.UserID,
			Role:         authz.Role(model.Role),
			DepartmentID: model.DepartmentID,
			EmployeeID:   model.EmployeeID,
			IsActive:     true,
		},
		ExpiresAt: model.ExpiresAt,
	}, nil
}

func (r *SessionRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&sessionDatamodel.Session{}).Error
}
