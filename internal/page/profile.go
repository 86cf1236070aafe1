package page

import (
	"context"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

const (
	profileFailed  = "Could not update the profile"
	passwordFailed = "Could not change the password"
)

// Profile edits the current user's own account.
type Profile struct {
	deps Deps

	User    *entity.User
	Saving  bool
	Error   string
	Success string
}

func NewProfile(d Deps) *Profile { return &Profile{deps: d} }

// Load shows the session user; gated on authentication.
func (p *Profile) Load(ctx context.Context) error {
	u, err := RequireAuth(ctx, p.deps.Session)
	if err := guard(p.deps.Nav, err); err != nil {
		return err
	}
	p.User = u
	return nil
}

// Save sends the edited fields and, on success, merges them into the
// session user.
func (p *Profile) Save(ctx context.Context, upd entity.UserUpdate) error {
	p.Error, p.Success = "", ""
	if _, err := RequireAuth(ctx, p.deps.Session); guard(p.deps.Nav, err) != nil {
		return err
	}
	if upd.Name != nil && blank(*upd.Name) {
		p.Error = ErrRequired.Error()
		return ErrRequired
	}
	p.Saving = true
	defer func() { p.Saving = false }()

	if _, err := p.deps.Client.Auth.UpdateProfile(ctx, upd); err != nil {
		p.Error = api.DetailOf(err, profileFailed)
		return err
	}
	p.deps.Session.UpdateUser(upd)
	p.User = p.deps.Session.User()
	p.Success = "Profile updated"
	return nil
}

// ChangePassword checks the confirmation locally before calling the backend.
func (p *Profile) ChangePassword(ctx context.Context, current, next, confirm string) error {
	p.Error, p.Success = "", ""
	if _, err := RequireAuth(ctx, p.deps.Session); guard(p.deps.Nav, err) != nil {
		return err
	}
	if err := ValidatePassword(next, confirm); err != nil {
		p.Error = err.Error()
		return err
	}
	p.Saving = true
	defer func() { p.Saving = false }()

	if err := p.deps.Client.Auth.ChangePassword(ctx, entity.PasswordChange{CurrentPassword: current, NewPassword: next}); err != nil {
		p.Error = api.DetailOf(err, passwordFailed)
		return err
	}
	p.Success = "Password changed"
	return nil
}
