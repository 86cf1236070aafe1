package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/page"
)

// dogQueryFlags registers the shared listing filters on fs.
func dogQueryFlags(fs *flag.FlagSet, q *entity.DogQuery) {
	fs.StringVar(&q.Breed, "breed", "", "breed filter")
	fs.StringVar((*string)(&q.Size), "size", "", "small|medium|large|extra_large")
	fs.StringVar((*string)(&q.Gender), "gender", "", "male|female")
	fs.StringVar(&q.Location, "location", "", "location filter")
	fs.StringVar((*string)(&q.Status), "status", "", "available|fostered|adopted|medical_care")
	fs.IntVar(&q.Skip, "skip", 0, "offset")
	fs.IntVar(&q.Limit, "limit", 0, "page size")
}

func cmdDogs(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "dogs")
	var q entity.DogQuery
	dogQueryFlags(fs, &q)
	all := fs.Bool("all", false, "include dogs of every status (shelter admins)")
	term := fs.String("match", "", "local name/breed match on the loaded list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *all {
		dogs, err := c.app.Client.Dogs.ListAll(ctx, q)
		if err != nil {
			return err
		}
		return c.printJSON(page.FilterDogs(dogs, *term, page.Filters{}))
	}
	p := page.NewDogs(c.pages)
	if err := p.Load(ctx, q); err != nil {
		return err
	}
	p.Term = *term
	return c.printJSON(p.Visible())
}

func cmdDog(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "dog")
	id := fs.Int64("id", 0, "dog id")
	toggle := fs.Bool("favorite", false, "toggle favourite")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("-id required")
	}
	p := page.NewDogDetail(c.pages)
	if err := p.Load(ctx, *id); err != nil {
		return err
	}
	if *toggle {
		if err := p.ToggleFavorite(ctx); err != nil {
			return err
		}
		fmt.Fprintf(c.stderr, "favourite: %v\n", p.Favorite)
	}
	return c.printJSON(p.Dog)
}

func cmdAddDog(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "add-dog")
	var (
		name, breed, size, gender, location, description string
		age                                              int
		photos                                           string
	)
	fs.StringVar(&name, "name", "", "dog name")
	fs.StringVar(&breed, "breed", "", "breed")
	fs.StringVar(&size, "size", "", "small|medium|large|extra_large")
	fs.StringVar(&gender, "gender", "", "male|female")
	fs.StringVar(&location, "location", "", "location")
	fs.StringVar(&description, "description", "", "description")
	fs.IntVar(&age, "age", 0, "age in months")
	fs.StringVar(&photos, "photos", "", "comma separated image paths")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := entity.DogInput{Name: &name}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "breed":
			in.Breed = &breed
		case "size":
			s := entity.DogSize(size)
			in.Size = &s
		case "gender":
			g := entity.DogGender(gender)
			in.Gender = &g
		case "location":
			in.Location = &location
		case "description":
			in.Description = &description
		case "age":
			in.Age = &age
		}
	})

	var uploads []page.PhotoUpload
	for _, path := range strings.Split(photos, ",") {
		if path = strings.TrimSpace(path); path == "" {
			continue
		}
		f, err := openFile(path)
		if err != nil {
			return err
		}
		defer f.Close()
		uploads = append(uploads, page.PhotoUpload{Filename: filepath.Base(path), Body: f})
	}

	p := page.NewAddDog(c.pages)
	if err := p.Submit(ctx, in, uploads); err != nil {
		if p.Created != nil {
			fmt.Fprintf(c.stderr, "dog %d created, some photos failed\n", p.Created.ID)
		}
		return formError(p.Error, err)
	}
	return c.printJSON(p.Created)
}

func cmdPoster(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "poster")
	id := fs.Int64("id", 0, "dog id")
	out := fs.String("out", "", "output path (defaults to the server file name)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("-id required")
	}
	p := page.NewDogDetail(c.pages)
	if err := p.Load(ctx, *id); err != nil {
		return err
	}
	poster, err := p.Poster(ctx)
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = poster.Filename
	}
	if path == "" {
		path = fmt.Sprintf("dog_%d_poster.pdf", *id)
	}
	if err := os.WriteFile(path, poster.Data, 0o644); err != nil {
		return fmt.Errorf("write poster: %w", err)
	}
	fmt.Fprintf(c.stdout, "saved %s (%d bytes)\n", path, len(poster.Data))
	return nil
}

func cmdSearch(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "search")
	var q entity.DogQuery
	dogQueryFlags(fs, &q)
	query := fs.String("q", "", "free text")
	breeds := fs.Bool("breeds", false, "list known breeds")
	locations := fs.Bool("locations", false, "suggest locations matching -q")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch {
	case *breeds:
		out, err := c.app.Client.Search.Breeds(ctx)
		if err != nil {
			return err
		}
		return c.printJSON(out)
	case *locations:
		out, err := c.app.Client.Search.Locations(ctx, *query)
		if err != nil {
			return err
		}
		return c.printJSON(out)
	}
	dogs, err := c.app.Client.Search.Dogs(ctx, *query, q)
	if err != nil {
		return err
	}
	return c.printJSON(dogs)
}

func cmdFavorites(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "favorites")
	add := fs.Int64("add", 0, "dog id to add")
	remove := fs.Int64("remove", 0, "dog id to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := page.RequireAuth(ctx, c.app.Session); err != nil {
		return err
	}
	switch {
	case *add > 0:
		if err := c.app.Client.Favorites.Add(ctx, *add); err != nil {
			return err
		}
	case *remove > 0:
		if err := c.app.Client.Favorites.Remove(ctx, *remove); err != nil {
			return err
		}
	}
	favs, err := c.app.Client.Favorites.Get(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(favs)
}

func cmdApply(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "apply")
	id := fs.Int64("dog", 0, "dog id")
	var in entity.ApplicationInput
	fs.StringVar(&in.Message, "message", "", "message to the shelter")
	fs.StringVar(&in.Experience, "experience", "", "experience with dogs")
	fs.StringVar(&in.LivingSituation, "living", "", "living situation")
	fs.StringVar(&in.Availability, "availability", "", "availability")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("-dog required")
	}
	p := page.NewDogDetail(c.pages)
	if err := p.Load(ctx, *id); err != nil {
		return err
	}
	if err := p.Apply(ctx, in); err != nil {
		return err
	}
	return c.printJSON(p.Applied)
}

func cmdApplications(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "applications")
	review := fs.Bool("review", false, "list applications for your dogs (shelter admins)")
	status := fs.String("status", "", "filter by status when reviewing")
	dogID := fs.Int64("dog", 0, "filter by dog when reviewing")
	setID := fs.Int64("id", 0, "application id to update")
	setStatus := fs.String("set", "", "new status for -id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *setID > 0 {
		st := entity.ApplicationStatus(*setStatus)
		if !st.Valid() {
			return fmt.Errorf("-set: unknown status %q", *setStatus)
		}
		app, err := c.app.Client.Fosters.UpdateStatus(ctx, *setID, st)
		if err != nil {
			return err
		}
		return c.printJSON(app)
	}
	if *review {
		if _, err := page.RequireDogCreator(ctx, c.app.Session); err != nil {
			return err
		}
		apps, err := c.app.Client.Fosters.Applications(ctx, entity.ApplicationQuery{
			Status: entity.ApplicationStatus(*status),
			DogID:  *dogID,
		})
		if err != nil {
			return err
		}
		return c.printJSON(apps)
	}

	p := page.NewMyFosters(c.pages)
	if err := p.Load(ctx); err != nil {
		return err
	}
	return c.printJSON(p.Applications)
}
