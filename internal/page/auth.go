package page

import (
	"context"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
)

// Login is the login form.
type Login struct {
	deps Deps

	Submitting bool
	Error      string
}

func NewLogin(d Deps) *Login { return &Login{deps: d} }

// Submit logs in and moves to the home view on success.
func (p *Login) Submit(ctx context.Context, email, password string) bool {
	p.Error = ""
	if blank(email) || password == "" {
		p.Error = ErrRequired.Error()
		return false
	}
	p.Submitting = true
	defer func() { p.Submitting = false }()

	res := p.deps.Session.Login(ctx, entity.Credentials{Email: email, Password: password})
	if !res.Success {
		p.Error = res.Error
		return false
	}
	p.deps.Nav.Navigate(view.RouteHome)
	return true
}

// RegisterForm is the self-service sign-up form.
type RegisterForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	Name            string
	Phone           string
	Location        string
	UserType        entity.UserType
}

// Register is the sign-up form. Shelters use ShelterRegister instead.
type Register struct {
	deps Deps

	Submitting bool
	Error      string
}

func NewRegister(d Deps) *Register { return &Register{deps: d} }

func (p *Register) Submit(ctx context.Context, f RegisterForm) bool {
	p.Error = ""
	if blank(f.Email) || blank(f.Name) {
		p.Error = ErrRequired.Error()
		return false
	}
	if err := ValidatePassword(f.Password, f.ConfirmPassword); err != nil {
		p.Error = err.Error()
		return false
	}
	typ := f.UserType
	if typ == "" {
		typ = entity.UserTypeFoster
	}
	// shelters and admins are never self-assigned here
	if typ != entity.UserTypeFoster && typ != entity.UserTypeVolunteer {
		p.Error = ErrForbidden.Error()
		return false
	}
	p.Submitting = true
	defer func() { p.Submitting = false }()

	res := p.deps.Session.Register(ctx, entity.Registration{
		Email:    f.Email,
		Password: f.Password,
		Name:     f.Name,
		Phone:    f.Phone,
		Location: f.Location,
		UserType: typ,
	})
	if !res.Success {
		p.Error = res.Error
		return false
	}
	p.deps.Nav.Navigate(view.RouteHome)
	return true
}
