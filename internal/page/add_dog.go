package page

import (
	"context"
	"fmt"
	"io"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
	"go.uber.org/multierr"
)

const addDogFailed = "Could not create the dog"

// PhotoUpload is one file attached to a new dog.
type PhotoUpload struct {
	Filename string
	Body     io.Reader
}

// AddDog creates a listing. Only approved shelters and admins may use it.
type AddDog struct {
	deps Deps

	Created *entity.Dog
	Photos  []entity.Photo
	Saving  bool
	Error   string
}

func NewAddDog(d Deps) *AddDog { return &AddDog{deps: d} }

// Open checks that the current user can create dogs.
func (p *AddDog) Open(ctx context.Context) error {
	_, err := RequireDogCreator(ctx, p.deps.Session)
	return guard(p.deps.Nav, err)
}

// Submit creates the dog and then uploads the photos one by one. Photo
// failures are collected; the dog stays created.
func (p *AddDog) Submit(ctx context.Context, in entity.DogInput, photos []PhotoUpload) error {
	p.Error = ""
	if err := p.Open(ctx); err != nil {
		return err
	}
	if in.Name == nil || blank(*in.Name) {
		p.Error = ErrRequired.Error()
		return ErrRequired
	}
	in.Name = optional(*in.Name)
	p.Saving = true
	defer func() { p.Saving = false }()

	dog, err := p.deps.Client.Dogs.Create(ctx, in)
	if err != nil {
		p.Error = api.DetailOf(err, addDogFailed)
		return err
	}
	p.Created = dog

	var errs error
	for _, ph := range photos {
		photo, err := p.deps.Client.Dogs.UploadPhoto(ctx, dog.ID, ph.Filename, ph.Body)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("upload %s: %w", ph.Filename, err))
			continue
		}
		p.Photos = append(p.Photos, *photo)
	}
	if errs != nil {
		p.Error = errs.Error()
		return errs
	}
	p.deps.Nav.Navigate(view.RouteDogs)
	return nil
}
