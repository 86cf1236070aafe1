package page

import (
	"context"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

const (
	dogFailed   = "Could not load this dog"
	applyFailed = "Could not submit the application"
)

// DogDetail shows one dog with its favourite and apply actions.
type DogDetail struct {
	deps Deps

	Dog       *entity.Dog
	Favorite  bool
	Applied   *entity.FosterApplication
	Error     string
	favorites map[int64]bool
}

func NewDogDetail(d Deps) *DogDetail { return &DogDetail{deps: d} }

// Load fetches the dog and, for a signed-in user, whether it is a favourite.
func (p *DogDetail) Load(ctx context.Context, id int64) error {
	dog, err := p.deps.Client.Dogs.Get(ctx, id)
	if err != nil {
		p.Error = api.DetailOf(err, dogFailed)
		return err
	}
	p.Error = ""
	p.Dog = dog
	p.Favorite = false
	if p.deps.Session.IsAuthenticated() {
		favs, err := p.deps.Client.Favorites.Get(ctx)
		if err != nil {
			return err
		}
		p.favorites = make(map[int64]bool, len(favs))
		for _, f := range favs {
			p.favorites[f.ID] = true
		}
		p.Favorite = p.favorites[id]
	}
	return nil
}

// ToggleFavorite adds or removes the loaded dog from the favourites.
func (p *DogDetail) ToggleFavorite(ctx context.Context) error {
	if _, err := RequireAuth(ctx, p.deps.Session); guard(p.deps.Nav, err) != nil {
		return err
	}
	if p.Dog == nil {
		return ErrRequired
	}
	var err error
	if p.Favorite {
		err = p.deps.Client.Favorites.Remove(ctx, p.Dog.ID)
	} else {
		err = p.deps.Client.Favorites.Add(ctx, p.Dog.ID)
	}
	if err != nil {
		return err
	}
	p.Favorite = !p.Favorite
	return nil
}

// Apply submits a foster application. Anonymous users are sent to login.
func (p *DogDetail) Apply(ctx context.Context, in entity.ApplicationInput) error {
	if _, err := RequireAuth(ctx, p.deps.Session); guard(p.deps.Nav, err) != nil {
		return err
	}
	if p.Dog == nil {
		return ErrRequired
	}
	app, err := p.deps.Client.Fosters.Apply(ctx, p.Dog.ID, in)
	if err != nil {
		p.Error = api.DetailOf(err, applyFailed)
		return err
	}
	p.Error = ""
	p.Applied = app
	return nil
}

// Poster downloads the adoption poster of the loaded dog.
func (p *DogDetail) Poster(ctx context.Context) (*entity.Poster, error) {
	if p.Dog == nil {
		return nil, ErrRequired
	}
	return p.deps.Client.Dogs.AdoptionPoster(ctx, p.Dog.ID)
}
