package page

import (
	"context"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// MyFosters lists the signed-in user's applications and favourites.
type MyFosters struct {
	deps Deps

	Applications []entity.FosterApplication
	Favorites    []entity.Dog
	Error        string
}

func NewMyFosters(d Deps) *MyFosters { return &MyFosters{deps: d} }

func (p *MyFosters) Load(ctx context.Context) error {
	if _, err := RequireAuth(ctx, p.deps.Session); guard(p.deps.Nav, err) != nil {
		return err
	}
	apps, err := p.deps.Client.Fosters.MyApplications(ctx)
	if err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	favs, err := p.deps.Client.Favorites.Get(ctx)
	if err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	p.Error = ""
	p.Applications, p.Favorites = apps, favs
	return nil
}
