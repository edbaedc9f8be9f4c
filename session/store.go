// Package session holds the current authentication token and the identity
// derived from it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vastriantafyllou/goal-tracker/domain"
)

// SameSite policies understood by the storages.
const (
	SameSiteLax    = "Lax"
	SameSiteStrict = "Strict"
	SameSiteNone   = "None"
)

// Cookie describes how the token is persisted.
type Cookie struct {
	Name     string
	MaxAge   time.Duration
	SameSite string
	Secure   bool
	Path     string
}

// DefaultCookie is the access token cookie policy.
var DefaultCookie = Cookie{
	Name:     "access_token",
	MaxAge:   24 * time.Hour,
	SameSite: SameSiteLax,
	Secure:   false,
	Path:     "/",
}

// Storage persists the raw token. Load returns "" when nothing is stored.
type Storage interface {
	Load(ctx context.Context, cookie Cookie) (string, error)
	Save(ctx context.Context, token string, cookie Cookie) error
	Delete(ctx context.Context, cookie Cookie) error
}

// Authenticator exchanges credentials for a token.
type Authenticator interface {
	Login(ctx context.Context, credentials domain.Credentials) (*domain.LoginResult, error)
}

// Reader is the read-only view of a store handed to gates, gateways and handlers.
type Reader interface {
	Session() domain.Session
	IsAuthenticated() bool
	Token() string
}

// Option customises a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCookie overrides the persistence policy.
func WithCookie(cookie Cookie) Option {
	return func(s *Store) {
		s.cookie = cookie
	}
}

// WithExpiryCheck makes the store treat tokens whose exp claim has passed as absent.
func WithExpiryCheck(now func() time.Time) Option {
	return func(s *Store) {
		if now == nil {
			now = time.Now
		}
		s.now = now
	}
}

// Store is the single source of truth for who is logged in.
type Store struct {
	storage Storage
	auth    Authenticator
	cookie  Cookie
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current domain.Session
}

// New builds a store and loads the persisted token once.
func New(ctx context.Context, storage Storage, auth Authenticator, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		auth:    auth,
		cookie:  DefaultCookie,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if storage != nil {
		token, err := storage.Load(ctx, s.cookie)
		if err != nil {
			s.logger.Warn("failed to load persisted token", zap.Error(err))
			token = ""
		}
		s.setToken(token)
	}
	return s
}

// Session returns a copy of the current session.
func (s *Store) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsAuthenticated reports whether a decoded token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Session().IsAuthenticated()
}

// Token returns the raw token or "".
func (s *Store) Token() string {
	return s.Session().Token
}

// Login authenticates, persists the token and then derives the identity.
// On failure the session is left untouched.
func (s *Store) Login(ctx context.Context, credentials domain.Credentials) error {
	if s.auth == nil {
		return domain.NewError(domain.ErrCodeInternal, "login is not configured")
	}
	if err := credentials.Validate(); err != nil {
		return err
	}

	result, err := s.auth.Login(ctx, credentials)
	if err != nil {
		return err
	}
	if result == nil || result.Token == "" {
		return domain.NewError(domain.ErrCodeUpstream, "Login failed")
	}

	if s.storage != nil {
		if err := s.storage.Save(ctx, result.Token, s.cookie); err != nil {
			return domain.WrapError(domain.ErrCodeInternal, "failed to persist session", err)
		}
	}

	s.setToken(result.Token)
	s.logger.Debug("session established", zap.String("username", s.Session().Username))
	return nil
}

// Logout removes the persisted token and clears the session. The in-memory
// session is cleared even when the storage fails.
func (s *Store) Logout(ctx context.Context) error {
	var err error
	if s.storage != nil {
		err = s.storage.Delete(ctx, s.cookie)
	}

	s.mu.Lock()
	s.current = domain.Session{}
	s.mu.Unlock()

	if err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "failed to remove session", err)
	}
	return nil
}

func (s *Store) setToken(token string) {
	next := domain.Session{}
	if token != "" {
		decoded, err := DecodeToken(token)
		switch {
		case err != nil:
			s.logger.Debug("discarding undecodable token", zap.Error(err))
		case s.now != nil && decoded.IsExpired(s.now()):
			s.logger.Debug("discarding expired token", zap.Time("expires_at", decoded.ExpiresAt))
		default:
			next = decoded
		}
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// Anonymous is a Reader with no session.
var Anonymous Reader = anonymous{}

type anonymous struct{}

func (anonymous) Session() domain.Session { return domain.Session{} }
func (anonymous) IsAuthenticated() bool   { return false }
func (anonymous) Token() string           { return "" }

// IsDecodeError reports whether err came from DecodeToken.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrNoToken) || errors.Is(err, ErrMalformedToken) || errors.Is(err, ErrMissingClaim)
}
