package credential

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultTTL is how long a persisted credential stays valid after it is
// stored, regardless of the token's own lifetime.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrNoCredential is returned when nothing is persisted or the persisted
	// credential has expired.
	ErrNoCredential = errors.New("no credential")
	// ErrEmptyToken is returned by Set for a blank token.
	ErrEmptyToken = errors.New("empty token")
)

// Record is the single persisted value.
type Record struct {
	Token     string    `json:"token" db:"token"`
	IssuedAt  time.Time `json:"issued_at" db:"issued_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Backend persists at most one Record. Load returns ErrNoCredential when
// there is none; Delete of a missing record is not an error.
type Backend interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec Record) error
	Delete(ctx context.Context) error
}

// Store is the bearer credential holder shared by the session manager and
// the HTTP access layer.
type Store struct {
	backend Backend
	clock   clockwork.Clock
	ttl     time.Duration
	logger  *zap.SugaredLogger

	mu sync.Mutex
}

// NewStore wraps a backend. A nil clock uses the wall clock and a nil
// logger discards output.
func NewStore(backend Backend, clock clockwork.Clock, logger *zap.SugaredLogger) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{backend: backend, clock: clock, ttl: DefaultTTL, logger: logger}
}

// Get returns the persisted token. Records past their storage expiry, and
// JWTs past their own exp claim, are removed and reported as ErrNoCredential.
func (s *Store) Get(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("load credential: %w", err)
	}
	now := s.clock.Now()
	if !rec.ExpiresAt.After(now) {
		s.logger.Debugw("persisted credential expired", "expires_at", rec.ExpiresAt)
		return "", s.dropLocked(ctx)
	}
	if exp, ok := TokenExpiry(rec.Token); ok && !exp.After(now) {
		s.logger.Debugw("token exp claim passed", "exp", exp)
		return "", s.dropLocked(ctx)
	}
	return rec.Token, nil
}

// Set persists token with a fresh expiry of DefaultTTL.
func (s *Store) Set(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	now := s.clock.Now().UTC()
	rec := Record{Token: token, IssuedAt: now, ExpiresAt: now.Add(s.ttl)}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Save(ctx, rec); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Remove deletes the persisted credential. Removing twice is a no-op.
func (s *Store) Remove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(ctx); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// Record returns the raw persisted record without expiry checks.
func (s *Store) Record(ctx context.Context) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Load(ctx)
}

func (s *Store) dropLocked(ctx context.Context) error {
	if err := s.backend.Delete(ctx); err != nil {
		return fmt.Errorf("delete expired credential: %w", err)
	}
	return ErrNoCredential
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// Opaque tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
