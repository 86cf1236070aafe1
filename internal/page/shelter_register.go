package page

import (
	"context"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
)

const (
	shelterSubmitted = "Application submitted. An administrator will review it."
	shelterFailed    = "Could not submit the application"
)

type ShelterRegisterForm struct {
	Email              string
	Password           string
	ConfirmPassword    string
	Name               string
	Phone              string
	Location           string
	ShelterName        string
	ShelterLicense     string
	ShelterAddress     string
	ShelterWebsite     string
	ShelterDescription string
}

// ShelterRegister submits a shelter application for admin approval.
type ShelterRegister struct {
	deps Deps

	Submitting bool
	Error      string
	Success    string
}

func NewShelterRegister(d Deps) *ShelterRegister { return &ShelterRegister{deps: d} }

// Submit validates locally, then posts the application. Validation errors
// never reach the network.
func (p *ShelterRegister) Submit(ctx context.Context, f ShelterRegisterForm) error {
	p.Error, p.Success = "", ""
	if err := ValidatePassword(f.Password, f.ConfirmPassword); err != nil {
		p.Error = err.Error()
		return err
	}
	if blank(f.Email) || blank(f.Name) || blank(f.ShelterName) {
		p.Error = ErrRequired.Error()
		return ErrRequired
	}
	p.Submitting = true
	defer func() { p.Submitting = false }()

	_, err := p.deps.Client.Shelters.Register(ctx, entity.ShelterRegistration{
		Email:              f.Email,
		Password:           f.Password,
		Name:               f.Name,
		Phone:              f.Phone,
		Location:           f.Location,
		ShelterName:        f.ShelterName,
		ShelterLicense:     f.ShelterLicense,
		ShelterAddress:     f.ShelterAddress,
		ShelterWebsite:     f.ShelterWebsite,
		ShelterDescription: f.ShelterDescription,
		UserType:           entity.UserTypeShelter,
	})
	if err != nil {
		p.Error = api.DetailOf(err, shelterFailed)
		return err
	}
	p.Success = shelterSubmitted
	p.deps.Nav.Navigate(view.RouteLogin)
	return nil
}
