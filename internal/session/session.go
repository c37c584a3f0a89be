package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/SamridhiParajuli/store-dashboard/internal/authz"
	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const contextActorKey ctxKey = "actor"

// ActorFromContext returns the request actor, if authenticated.
func ActorFromContext(ctx context.Context) (authz.Actor, bool) {
	a, ok := ctx.Value(contextActorKey).(authz.Actor)
	return a, ok
}

func ContextWithActor(ctx context.Context, actor authz.Actor) context.Context {
	return context.WithValue(ctx, contextActorKey, actor)
}

// State is the session lifecycle state. There are exactly two.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// Context owns the process-wide actor. No other component constructs
// or mutates actors; everyone else reads a snapshot.
type Context struct {
	mu    sync.RWMutex
	actor *authz.Actor
}

func NewContext() *Context {
	return &Context{}
}

func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.actor == nil {
		return StateUnauthenticated
	}
	return StateAuthenticated
}

// Current returns a copy of the actor; false when unauthenticated.
func (c *Context) Current() (authz.Actor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.actor == nil {
		return authz.Actor{}, false
	}
	return *c.actor, true
}

// Replace atomically swaps in a new actor. Last successful login wins.
func (c *Context) Replace(actor authz.Actor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := actor
	c.actor = &snapshot
}

// Clear atomically drops the actor.
func (c *Context) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.actor = nil
}

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthTokens struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (d *LoginDTO) Validate() error {
	d.Username = strings.TrimSpace(d.Username)
	if d.Username == "" {
		return errors.New("username is required")
	}
	if d.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// TokenGeneratorAPI issues and validates access tokens.
type TokenGeneratorAPI interface {
	GenerateAccessToken(actor authz.Actor) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(actor authz.Actor) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   actor.UserID,
		Username: actor.Username,
		Role:     string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserInactive       = errors.New("user is inactive")
)
