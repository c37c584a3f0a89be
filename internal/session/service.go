package session

import (
	"log/slog"
	"time"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is what the identity store yields for a username.
type Credentials struct {
	Actor        authz.Actor
	PasswordHash string
}

// UserRepositoryAPI is the identity boundary: credential lookup plus
// actor projection by id.
type UserRepositoryAPI interface {
	GetCredentials(username string) (*Credentials, error)
	GetActor(userID int64) (*authz.Actor, error)
}

// PersistedSession is the stored login snapshot used for hydration.
type PersistedSession struct {
	ID        string
	Actor     authz.Actor
	ExpiresAt time.Time
}

type SessionRepositoryAPI interface {
	Save(s PersistedSession) error
	GetLatest() (*PersistedSession, error)
	Delete(id string) error
}

// Invalidator is the best-effort remote invalidation hook. Failures
// are logged, never propagated: local logout is authoritative.
type Invalidator interface {
	InvalidateSession(sessionID string) error
}

type Service struct {
	users       UserRepositoryAPI
	sessions    SessionRepositoryAPI
	tokens      TokenGeneratorAPI
	invalidator Invalidator
	ctx         *Context
	sessionTTL  time.Duration
	logger      *slog.Logger
}

func NewService(users UserRepositoryAPI, sessions SessionRepositoryAPI, tokens TokenGeneratorAPI, invalidator Invalidator, ctx *Context, sessionTTL time.Duration, logger *slog.Logger) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 24 * 7 * time.Hour
	}
	return &Service{
		users:       users,
		sessions:    sessions,
		tokens:      tokens,
		invalidator: invalidator,
		ctx:         ctx,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (s *Service) Context() *Context {
	return s.ctx
}

// Hydrate loads the persisted session on process start. Absent or
// expired sessions leave the context unauthenticated; that is not an
// error.
func (s *Service) Hydrate() error {
	persisted, err := s.sessions.GetLatest()
	if err != nil {
		s.logger.Warn("could not read persisted session, starting unauthenticated", "error", err)
		return nil
	}
	if persisted == nil || time.Now().After(persisted.ExpiresAt) {
		s.ctx.Clear()
		return nil
	}

	s.ctx.Replace(persisted.Actor)
	s.logger.Info("session hydrated", "user_id", persisted.Actor.UserID, "role", persisted.Actor.Role)
	return nil
}

// Login verifies credentials, swaps the actor in atomically, and
// persists the new session.
func (s *Service) Login(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	creds, err := s.users.GetCredentials(dto.Username)
	if err != nil || creds == nil {
		return AuthTokens{}, ErrInvalidCredentials
	}
	if !creds.Actor.IsActive {
		return AuthTokens{}, ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(creds.Actor)
	if err != nil {
		s.logger.Error("failed to generate access token", "error", err)
		return AuthTokens{}, err
	}

	s.ctx.Replace(creds.Actor)

	persisted := PersistedSession{
		ID:        uuid.NewString(),
		Actor:     creds.Actor,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(persisted); err != nil {
		// The in-memory login already succeeded; a failed persist only
		// costs hydration after restart.
		s.logger.Warn("failed to persist session", "error", err)
	}

	s.logger.Info("login succeeded", "user_id", creds.Actor.UserID, "role", creds.Actor.Role)
	return AuthTokens{AccessToken: token, TokenType: "bearer"}, nil
}

// Logout clears the local session and best-effort invalidates the
// remote one. Remote failure never blocks the user out of their own
// logout.
func (s *Service) Logout() {
	persisted, err := s.sessions.GetLatest()

	s.ctx.Clear()

	if err != nil || persisted == nil {
		return
	}
	if err := s.sessions.Delete(persisted.ID); err != nil {
		s.logger.Warn("failed to delete persisted session", "error", err)
	}
	if s.invalidator != nil {
		if err := s.invalidator.InvalidateSession(persisted.ID); err != nil {
			s.logger.Warn("remote session invalidation failed", "session_id", persisted.ID, "error", err)
		}
	}
	s.logger.Info("logout completed")
}

// ActorForToken validates an access token and returns a fresh actor
// snapshot for the request.
func (s *Service) ActorForToken(tokenString string) (authz.Actor, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return authz.Actor{}, err
	}

	actor, err := s.users.GetActor(claims.UserID)
	if err != nil || actor == nil {
		return authz.Actor{}, ErrInvalidToken
	}
	if !actor.IsActive {
		return authz.Actor{}, ErrUserInactive
	}
	return *actor, nil
}
