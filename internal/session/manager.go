// Package session owns the authenticated identity of the running client.
// All reads and writes of the current user and of the persisted bearer
// credential go through Manager.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/credential"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

const (
	LoginFailedMessage    = "Login failed"
	RegisterFailedMessage = "Registration failed"
)

// Result is what login and register hand back to forms: never an error
// value, so callers can render Error inline.
type Result struct {
	Success bool
	Error   string
}

// AuthService is the subset of the /auth endpoints the manager calls.
type AuthService interface {
	Me(ctx context.Context) (*entity.User, error)
	Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error)
	Register(ctx context.Context, reg entity.Registration) (*entity.AuthResponse, error)
}

// CredentialStore persists the bearer token.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

type Manager struct {
	auth   AuthService
	creds  CredentialStore
	logger *zap.SugaredLogger

	mu      sync.RWMutex
	user    *entity.User
	loading bool

	initOnce sync.Once
	ready    chan struct{}
}

// NewManager returns a manager in the loading state. Call Initialize once
// at startup.
func NewManager(auth AuthService, creds CredentialStore, logger *zap.SugaredLogger) *Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Manager{
		auth:    auth,
		creds:   creds,
		logger:  logger,
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Initialize verifies a persisted credential, if any, and loads the user.
// Verification failures are logged and downgrade silently to logged out.
// Only the first call does any work; every call returns after loading has
// finished.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		defer func() {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
			close(m.ready)
		}()
		m.verify(ctx)
	})
	<-m.ready
}

func (m *Manager) verify(ctx context.Context) {
	if _, err := m.creds.Get(ctx); err != nil {
		if !errors.Is(err, credential.ErrNoCredential) {
			m.logger.Warnw("read persisted credential failed", "err", err)
			m.Logout(ctx)
		}
		return
	}
	// background re-authentication stays silent; failures are only logged
	user, err := m.auth.Me(api.Quiet(ctx))
	if err != nil {
		m.logger.Warnw("token verification failed", "err", err)
		m.Logout(ctx)
		return
	}
	m.setUser(user)
}

// Ready is closed once Initialize has completed.
func (m *Manager) Ready() <-chan struct{} { return m.ready }

// Login authenticates, persists the credential for seven days and sets the
// current user.
func (m *Manager) Login(ctx context.Context, creds entity.Credentials) Result {
	resp, err := m.auth.Login(ctx, creds)
	if err != nil {
		return Result{Error: api.DetailOf(err, LoginFailedMessage)}
	}
	return m.establish(ctx, resp, LoginFailedMessage)
}

// Register creates the account and logs it in.
func (m *Manager) Register(ctx context.Context, reg entity.Registration) Result {
	resp, err := m.auth.Register(ctx, reg)
	if err != nil {
		return Result{Error: api.DetailOf(err, RegisterFailedMessage)}
	}
	return m.establish(ctx, resp, RegisterFailedMessage)
}

func (m *Manager) establish(ctx context.Context, resp *entity.AuthResponse, fallback string) Result {
	if err := m.creds.Set(ctx, resp.AccessToken); err != nil {
		m.logger.Errorw("persist credential failed", "err", err)
		return Result{Error: fallback}
	}
	user := resp.User
	m.setUser(&user)
	return Result{Success: true}
}

// Logout removes the persisted credential and clears the user. It makes no
// network call and is safe to call repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.creds.Remove(ctx); err != nil {
		m.logger.Warnw("remove credential failed", "err", err)
	}
	m.setUser(nil)
}

// UpdateUser merges upd into the current user after a successful profile
// edit elsewhere. It does nothing when logged out.
func (m *Manager) UpdateUser(upd entity.UserUpdate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	merged := m.user.Apply(upd)
	m.user = &merged
}

// User returns a copy of the current user, or nil.
func (m *Manager) User() *entity.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated is derived from the current user on every call.
func (m *Manager) IsAuthenticated() bool {
	return m.User() != nil
}

// Loading reports whether Initialize is still running.
func (m *Manager) Loading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) setUser(u *entity.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
}
