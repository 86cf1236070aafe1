package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/credential"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/notify"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
)

var testUser = entity.User{
	ID:         1,
	Name:       "Ana",
	Email:      "ana@example.com",
	UserType:   entity.UserTypeFoster,
	IsActive:   true,
	IsVerified: true,
}

func newStore() (*credential.Store, *credential.MemoryBackend, *clockwork.FakeClock) {
	backend := credential.NewMemoryBackend()
	clock := clockwork.NewFakeClockAt(time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC))
	return credential.NewStore(backend, clock, nil), backend, clock
}

// Requirement: without a persisted credential Initialize ends logged out
// and makes no network call.
func TestInitialize_NoCredential(t *testing.T) {
	// Arrange
	store, _, _ := newStore()
	auth := &fakeAuth{}
	m := NewManager(auth, store, nil)
	if !m.Loading() {
		t.Fatal("manager should start loading")
	}

	// Act
	m.Initialize(context.Background())

	// Assert
	if m.Loading() {
		t.Fatal("Loading() = true after Initialize")
	}
	if m.User() != nil || m.IsAuthenticated() {
		t.Fatal("user set without credential")
	}
	if auth.meCalls != 0 {
		t.Fatalf("Me() calls = %d, want 0", auth.meCalls)
	}
	select {
	case <-m.Ready():
	default:
		t.Fatal("Ready() not closed")
	}
}

func TestInitialize_ValidCredential(t *testing.T) {
	store, _, _ := newStore()
	ctx := context.Background()
	_ = store.Set(ctx, "good")
	auth := &fakeAuth{meFunc: func(context.Context) (*entity.User, error) {
		u := testUser
		return &u, nil
	}}
	m := NewManager(auth, store, nil)

	m.Initialize(ctx)
	m.Initialize(ctx)

	if auth.meCalls != 1 {
		t.Fatalf("Me() calls = %d, want 1", auth.meCalls)
	}
	if u := m.User(); u == nil || u.Email != testUser.Email {
		t.Fatalf("User() = %+v", u)
	}
	if m.Loading() {
		t.Fatal("still loading")
	}
}

// Requirement: an invalid or expired credential ends logged out with the
// credential removed.
func TestInitialize_InvalidCredential(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *credential.Store, clock *clockwork.FakeClock)
		meErr error
	}{
		{
			name:  "server rejects token",
			setup: func(s *credential.Store, _ *clockwork.FakeClock) { _ = s.Set(context.Background(), "revoked") },
			meErr: &api.Error{StatusCode: http.StatusUnauthorized, Detail: "Could not validate credentials"},
		},
		{
			name:  "network failure",
			setup: func(s *credential.Store, _ *clockwork.FakeClock) { _ = s.Set(context.Background(), "tok") },
			meErr: &api.Error{Err: errors.New("connection refused")},
		},
		{
			name: "persisted credential expired",
			setup: func(s *credential.Store, c *clockwork.FakeClock) {
				_ = s.Set(context.Background(), "old")
				c.Advance(8 * 24 * time.Hour)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, backend, clock := newStore()
			tt.setup(store, clock)
			auth := &fakeAuth{meFunc: func(context.Context) (*entity.User, error) { return nil, tt.meErr }}
			m := NewManager(auth, store, nil)

			m.Initialize(context.Background())

			if m.Loading() {
				t.Fatal("still loading")
			}
			if m.User() != nil {
				t.Fatal("user set after failed verification")
			}
			if _, err := backend.Load(context.Background()); !errors.Is(err, credential.ErrNoCredential) {
				t.Fatal("credential not removed")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name      string
		loginErr  error
		token     string
		wantOK    bool
		wantError string
	}{
		{name: "valid credentials", token: "tok-1", wantOK: true},
		{
			name:      "invalid credentials",
			loginErr:  &api.Error{StatusCode: http.StatusUnauthorized, Detail: "Incorrect email or password"},
			wantError: "Incorrect email or password",
		},
		{
			name:      "no detail",
			loginErr:  &api.Error{StatusCode: http.StatusInternalServerError},
			wantError: LoginFailedMessage,
		},
		{
			name:      "transport failure",
			loginErr:  errors.New("dial tcp: refused"),
			wantError: LoginFailedMessage,
		},
		{
			name:      "empty token from server",
			token:     "",
			wantError: LoginFailedMessage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			store, backend, clock := newStore()
			auth := &fakeAuth{loginFunc: func(_ context.Context, c entity.Credentials) (*entity.AuthResponse, error) {
				if tt.loginErr != nil {
					return nil, tt.loginErr
				}
				return &entity.AuthResponse{AccessToken: tt.token, TokenType: "bearer", User: testUser}, nil
			}}
			m := NewManager(auth, store, nil)
			m.Initialize(context.Background())

			// Act
			res := m.Login(context.Background(), entity.Credentials{Email: "ana@example.com", Password: "pw"})

			// Assert
			if res.Success != tt.wantOK || res.Error != tt.wantError {
				t.Fatalf("Login() = %+v, want success=%v error=%q", res, tt.wantOK, tt.wantError)
			}
			if !tt.wantOK {
				if m.User() != nil {
					t.Fatal("user set after failed login")
				}
				return
			}
			if !m.IsAuthenticated() || m.User().ID != testUser.ID {
				t.Fatalf("User() = %+v", m.User())
			}
			rec, err := backend.Load(context.Background())
			if err != nil {
				t.Fatalf("credential not persisted: %v", err)
			}
			if rec.Token != tt.token || !rec.ExpiresAt.Equal(clock.Now().UTC().Add(7*24*time.Hour)) {
				t.Fatalf("persisted record = %+v", rec)
			}
		})
	}
}

func TestRegisterAutoLogin(t *testing.T) {
	store, _, _ := newStore()
	var sent entity.Registration
	auth := &fakeAuth{registerFunc: func(_ context.Context, r entity.Registration) (*entity.AuthResponse, error) {
		sent = r
		u := testUser
		u.Name = r.Name
		return &entity.AuthResponse{AccessToken: "new", User: u}, nil
	}}
	m := NewManager(auth, store, nil)

	res := m.Register(context.Background(), entity.Registration{Email: "bo@example.com", Password: "pw", Name: "Bo"})

	if !res.Success {
		t.Fatalf("Register() = %+v", res)
	}
	if sent.Email != "bo@example.com" || m.User().Name != "Bo" {
		t.Fatalf("sent=%+v user=%+v", sent, m.User())
	}
	if tok, _ := store.Get(context.Background()); tok != "new" {
		t.Fatalf("token = %q", tok)
	}
}

func TestRegisterFailure(t *testing.T) {
	store, _, _ := newStore()
	auth := &fakeAuth{registerFunc: func(context.Context, entity.Registration) (*entity.AuthResponse, error) {
		return nil, &api.Error{StatusCode: 400, Detail: "Email already registered"}
	}}
	m := NewManager(auth, store, nil)

	res := m.Register(context.Background(), entity.Registration{})
	if res.Success || res.Error != "Email already registered" {
		t.Fatalf("Register() = %+v", res)
	}
	auth.registerFunc = func(context.Context, entity.Registration) (*entity.AuthResponse, error) {
		return nil, &api.Error{StatusCode: 500}
	}
	if res := m.Register(context.Background(), entity.Registration{}); res.Error != RegisterFailedMessage {
		t.Fatalf("Register() fallback = %q", res.Error)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store, backend, _ := newStore()
	auth := &fakeAuth{loginFunc: func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{AccessToken: "tok", User: testUser}, nil
	}}
	m := NewManager(auth, store, nil)
	ctx := context.Background()
	m.Login(ctx, entity.Credentials{})

	m.Logout(ctx)
	if m.User() != nil || m.IsAuthenticated() {
		t.Fatal("still authenticated after logout")
	}
	m.Logout(ctx)
	if m.User() != nil {
		t.Fatal("second logout changed state")
	}
	if _, err := backend.Load(ctx); !errors.Is(err, credential.ErrNoCredential) {
		t.Fatal("credential survived logout")
	}
}

// Requirement: UpdateUser merges and leaves every other field untouched.
func TestUpdateUserMerges(t *testing.T) {
	store, _, _ := newStore()
	phone := "555"
	u := testUser
	u.Phone = &phone
	auth := &fakeAuth{loginFunc: func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{AccessToken: "tok", User: u}, nil
	}}
	m := NewManager(auth, store, nil)
	m.Login(context.Background(), entity.Credentials{})
	before, _ := json.Marshal(m.User())

	name := "X"
	m.UpdateUser(entity.UserUpdate{Name: &name})

	got := m.User()
	if got.Name != "X" {
		t.Fatalf("Name = %q", got.Name)
	}
	got.Name = testUser.Name
	after, _ := json.Marshal(got)
	if string(before) != string(after) {
		t.Fatalf("fields other than name changed:\n%s\n%s", before, after)
	}
}

func TestUpdateUserWhenLoggedOut(t *testing.T) {
	store, _, _ := newStore()
	m := NewManager(&fakeAuth{}, store, nil)
	name := "X"
	m.UpdateUser(entity.UserUpdate{Name: &name})
	if m.User() != nil {
		t.Fatal("UpdateUser created a user while logged out")
	}
}

func TestUserReturnsCopy(t *testing.T) {
	store, _, _ := newStore()
	auth := &fakeAuth{loginFunc: func(context.Context, entity.Credentials) (*entity.AuthResponse, error) {
		return &entity.AuthResponse{AccessToken: "tok", User: testUser}, nil
	}}
	m := NewManager(auth, store, nil)
	m.Login(context.Background(), entity.Credentials{})

	m.User().Name = "mutated"
	if m.User().Name != testUser.Name {
		t.Fatal("User() leaked internal state")
	}
}

// Requirement: a 401 on any authenticated call ends the session; the
// user is unreachable until the next login.
func TestUnauthorizedResponseEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(entity.AuthResponse{AccessToken: "tok", TokenType: "bearer", User: testUser})
		case "/favorites":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Token expired"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store, backend, _ := newStore()
	router := view.NewRouter(nil)
	notes := &notify.Recorder{}
	client, err := api.New(api.Config{BaseURL: srv.URL}, store, notes, router, nil)
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(client.Auth, store, nil)
	client.OnUnauthorized(m.Logout)
	ctx := context.Background()
	m.Initialize(ctx)

	if res := m.Login(ctx, entity.Credentials{Email: "ana@example.com", Password: "pw"}); !res.Success {
		t.Fatalf("Login() = %+v", res)
	}

	if _, err := client.Favorites.Get(ctx); !api.IsUnauthorized(err) {
		t.Fatalf("Favorites.Get() error = %v, want 401", err)
	}

	if m.IsAuthenticated() {
		t.Fatal("still authenticated after 401")
	}
	if _, err := backend.Load(ctx); !errors.Is(err, credential.ErrNoCredential) {
		t.Fatal("credential survived 401")
	}
	if router.Current() != view.RouteLogin {
		t.Fatalf("route = %q", router.Current())
	}
	if len(notes.All()) != 0 {
		t.Fatalf("unexpected notifications: %v", notes.Messages())
	}
}

// Requirement: re-authentication at startup is silent; an unreachable
// backend ends signed out with no notification.
func TestInitialize_UnreachableBackendIsSilent(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	store, _, _ := newStore()
	notes := &notify.Recorder{}
	client, err := api.New(api.Config{BaseURL: base}, store, notes, view.NewRouter(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := store.Set(ctx, "tok"); err != nil {
		t.Fatal(err)
	}
	m := NewManager(client.Auth, store, nil)

	// Act
	m.Initialize(ctx)

	// Assert
	if m.IsAuthenticated() || m.Loading() {
		t.Fatalf("authenticated %v loading %v, want signed out and loaded", m.IsAuthenticated(), m.Loading())
	}
	if msgs := notes.Messages(); len(msgs) != 0 {
		t.Fatalf("notifications = %v, want none", msgs)
	}
}
