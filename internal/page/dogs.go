package page

import (
	"context"
	"strings"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

const dogsFailed = "Could not load dogs"

// Filters narrows the loaded dog list on the client.
type Filters struct {
	Breed    string
	Size     entity.DogSize
	Location string
}

// FilterDogs keeps the dogs whose name or breed contains term
// (case-insensitive) and that match every non-empty filter. Breed and
// location are case-sensitive substring matches, size is exact.
func FilterDogs(dogs []entity.Dog, term string, f Filters) []entity.Dog {
	term = strings.ToLower(term)
	out := make([]entity.Dog, 0, len(dogs))
	for _, d := range dogs {
		if term != "" &&
			!strings.Contains(strings.ToLower(d.Name), term) &&
			!strings.Contains(strings.ToLower(d.Breed), term) {
			continue
		}
		if f.Breed != "" && !strings.Contains(d.Breed, f.Breed) {
			continue
		}
		if f.Size != "" && d.Size != f.Size {
			continue
		}
		if f.Location != "" && !strings.Contains(d.Location, f.Location) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Dogs is the browse view.
type Dogs struct {
	deps Deps

	All     []entity.Dog
	Term    string
	Filters Filters
	Loading bool
	Error   string
}

func NewDogs(d Deps) *Dogs { return &Dogs{deps: d} }

// Load fetches the listing once; filtering afterwards is local.
func (p *Dogs) Load(ctx context.Context, q entity.DogQuery) error {
	p.Loading = true
	defer func() { p.Loading = false }()
	dogs, err := p.deps.Client.Dogs.List(ctx, q)
	if err != nil {
		p.Error = api.DetailOf(err, dogsFailed)
		return err
	}
	p.Error = ""
	p.All = dogs
	return nil
}

// Visible is the filtered view of All.
func (p *Dogs) Visible() []entity.Dog { return FilterDogs(p.All, p.Term, p.Filters) }

// Search runs a server-side search instead of a local filter.
func (p *Dogs) Search(ctx context.Context, query string) error {
	p.Loading = true
	defer func() { p.Loading = false }()
	dogs, err := p.deps.Client.Search.Dogs(ctx, query, entity.DogQuery{
		Breed:    p.Filters.Breed,
		Size:     p.Filters.Size,
		Location: p.Filters.Location,
	})
	if err != nil {
		p.Error = api.DetailOf(err, dogsFailed)
		return err
	}
	p.Error = ""
	p.All = dogs
	p.Term = ""
	return nil
}
