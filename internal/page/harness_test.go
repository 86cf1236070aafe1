package page

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/credential"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/notify"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/session"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
)

type call struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// backend is a fake API keyed by "METHOD /path". Unknown routes answer 404.
type backend struct {
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	calls  []call
}

func (b *backend) handle(key string, fn http.HandlerFunc) { b.routes[key] = fn }

func (b *backend) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))
	b.mu.Lock()
	b.calls = append(b.calls, call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: string(body)})
	fn := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()
	if fn == nil {
		writeJSON(w, http.StatusNotFound, `{"detail":"Not Found"}`)
		return
	}
	fn(w, r)
}

func (b *backend) count(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (b *backend) last(method, path string) (call, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.calls) - 1; i >= 0; i-- {
		if b.calls[i].Method == method && b.calls[i].Path == path {
			return b.calls[i], true
		}
	}
	return call{}, false
}

type env struct {
	deps    Deps
	backend *backend
	store   *credential.Store
	notes   *notify.Recorder
	router  *view.Router
}

// newEnv starts a fake backend and a session. When user is non-nil the
// session starts signed in as that user.
func newEnv(t *testing.T, user *entity.User) *env {
	t.Helper()
	e := &env{
		backend: &backend{routes: map[string]http.HandlerFunc{}},
		store:   credential.NewStore(credential.NewMemoryBackend(), nil, nil),
		notes:   &notify.Recorder{},
		router:  view.NewRouter(nil),
	}
	srv := httptest.NewServer(http.HandlerFunc(e.backend.serveHTTP))
	t.Cleanup(srv.Close)

	client, err := api.New(api.Config{BaseURL: srv.URL}, e.store, e.notes, e.router, nil)
	if err != nil {
		t.Fatalf("api.New() error: %v", err)
	}
	mgr := session.NewManager(client.Auth, e.store, nil)
	client.OnUnauthorized(mgr.Logout)

	ctx := context.Background()
	if user != nil {
		e.backend.handle("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, user)
		})
		if err := e.store.Set(ctx, "test-token"); err != nil {
			t.Fatalf("store.Set() error: %v", err)
		}
	}
	mgr.Initialize(ctx)
	if (mgr.User() != nil) != (user != nil) {
		t.Fatalf("session user = %+v, want signed in %v", mgr.User(), user != nil)
	}
	e.deps = Deps{Client: client, Session: mgr, Nav: e.router}
	return e
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeBody(w http.ResponseWriter, status int, v any) {
	b, _ := json.Marshal(v)
	writeJSON(w, status, string(b))
}

func userOf(typ entity.UserType) *entity.User {
	return &entity.User{ID: 9, Name: "Test", Email: "t@example.com", UserType: typ, IsActive: true}
}
