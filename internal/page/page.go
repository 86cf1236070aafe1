// Package page holds the form and list controllers behind each view. A
// controller owns its local state, validates input before any network
// call and reports failures inline through its Error field; cross-cutting
// failure handling (notifications, 401) stays in the api client.
package page

import (
	"context"
	"errors"
	"strings"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/session"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
)

// MinPasswordLength is enforced locally on every form that sets a password.
const MinPasswordLength = 6

var (
	ErrNotAuthenticated = errors.New("login required")
	ErrForbidden        = errors.New("not allowed for this account")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrRequired         = errors.New("required field missing")
)

// Deps bundles what every controller needs.
type Deps struct {
	Client  *api.Client
	Session *session.Manager
	Nav     view.Navigator
}

// Identity is the read side of the session used by guards.
type Identity interface {
	User() *entity.User
	Ready() <-chan struct{}
}

// RequireAuth waits for session initialization and returns the current
// user, or ErrNotAuthenticated.
func RequireAuth(ctx context.Context, id Identity) (*entity.User, error) {
	select {
	case <-id.Ready():
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	u := id.User()
	if u == nil {
		return nil, ErrNotAuthenticated
	}
	return u, nil
}

// RequireRole is RequireAuth plus a user_type check.
func RequireRole(ctx context.Context, id Identity, types ...entity.UserType) (*entity.User, error) {
	u, err := RequireAuth(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		if u.UserType == t {
			return u, nil
		}
	}
	return nil, ErrForbidden
}

// RequireDogCreator admits approved shelters and admins.
func RequireDogCreator(ctx context.Context, id Identity) (*entity.User, error) {
	u, err := RequireAuth(ctx, id)
	if err != nil {
		return nil, err
	}
	if !u.UserType.CanCreateDogs() {
		return nil, ErrForbidden
	}
	return u, nil
}

// RedirectFor maps a guard error to the route a gated view sends the user
// to. Empty means stay.
func RedirectFor(err error) string {
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		return view.RouteLogin
	case errors.Is(err, ErrForbidden):
		return view.RouteHome
	}
	return ""
}

// guard runs check and navigates away when it fails.
func guard(nav view.Navigator, err error) error {
	if err == nil {
		return nil
	}
	if to := RedirectFor(err); to != "" && nav != nil {
		nav.Navigate(to)
	}
	return err
}

// ValidatePassword checks the confirmation and the minimum length.
func ValidatePassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
