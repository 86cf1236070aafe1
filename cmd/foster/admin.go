package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/page"
)

func cmdShelters(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "shelters")
	mine := fs.Bool("mine", false, "show your own shelter application status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mine {
		if _, err := page.RequireAuth(ctx, c.app.Session); err != nil {
			return err
		}
		st, err := c.app.Client.Shelters.MyStatus(ctx)
		if err != nil {
			return err
		}
		return c.printJSON(st)
	}
	p := page.NewAdminPanel(c.pages)
	if err := p.Load(ctx); err != nil {
		return err
	}
	return c.printJSON(map[string]any{"pending": p.Pending, "approved": p.Approved})
}

func cmdApprove(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "approve")
	userID := fs.Int64("user", 0, "shelter user id")
	reject := fs.Bool("reject", false, "reject instead of approve")
	notes := fs.String("notes", "", "notes for the applicant")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID <= 0 {
		return errors.New("-user required")
	}
	p := page.NewAdminPanel(c.pages)
	if err := p.Decide(ctx, *userID, !*reject, *notes); err != nil {
		return formError(p.Error, err)
	}
	verb := "approved"
	if *reject {
		verb = "rejected"
	}
	fmt.Fprintf(c.stdout, "shelter %d %s; %d still pending\n", *userID, verb, len(p.Pending))
	return nil
}

func cmdExternal(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "external")
	dogs := fs.Bool("dogs", false, "list dogs from external shelters")
	shelter := fs.Int64("shelter", 0, "list dogs of one external shelter")
	sync := fs.Int64("sync", 0, "sync one external shelter")
	syncAll := fs.Bool("sync-all", false, "sync every external shelter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if _, err := page.RequireRole(ctx, c.app.Session, entity.UserTypeAdmin); err != nil {
		return err
	}
	ext := c.app.Client.External
	switch {
	case *syncAll:
		if err := ext.SyncAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.stdout, "sync started")
		return nil
	case *sync > 0:
		res, err := ext.Sync(ctx, *sync)
		if err != nil {
			return err
		}
		return c.printJSON(res)
	case *shelter > 0:
		out, err := ext.ShelterDogs(ctx, *shelter)
		if err != nil {
			return err
		}
		return c.printJSON(out)
	case *dogs:
		out, err := ext.Dogs(ctx)
		if err != nil {
			return err
		}
		return c.printJSON(out)
	}
	out, err := ext.Shelters(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(out)
}

func cmdUsers(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "users")
	p := page.NewUserManagement(c.pages)
	fs.StringVar(&p.Query.Search, "search", "", "match name or email")
	fs.StringVar((*string)(&p.Query.UserType), "type", "", "filter by user type")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := p.Load(ctx); err != nil {
		return err
	}
	return c.printJSON(p.Users)
}

func cmdStats(ctx context.Context, c *cli, args []string) error {
	p := page.NewUserManagement(c.pages)
	if err := p.Load(ctx); err != nil {
		return err
	}
	return c.printJSON(p.Stats)
}

func cmdEditUser(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "edit-user")
	id := fs.Int64("id", 0, "user id")
	var (
		name, email, phone, location, typ, password string
		active                                      bool
	)
	fs.StringVar(&name, "name", "", "name")
	fs.StringVar(&email, "email", "", "email")
	fs.StringVar(&phone, "phone", "", "phone")
	fs.StringVar(&location, "location", "", "location")
	fs.StringVar(&typ, "type", "", "user type")
	fs.StringVar(&password, "password", "", "new password")
	fs.BoolVar(&active, "active", true, "account active")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("-id required")
	}

	p := page.NewUserManagement(c.pages)
	if err := p.Load(ctx); err != nil {
		return err
	}
	var edit page.UserEdit
	found := false
	for _, u := range p.Users {
		if u.ID == *id {
			edit, found = page.EditFrom(u), true
			break
		}
	}
	if !found {
		return fmt.Errorf("user %d not found", *id)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			edit.Name = name
		case "email":
			edit.Email = email
		case "phone":
			edit.Phone = phone
		case "location":
			edit.Location = location
		case "type":
			edit.UserType = entity.UserType(typ)
		case "password":
			edit.Password = password
		case "active":
			edit.IsActive = active
		}
	})
	if err := p.Save(ctx, *id, edit); err != nil {
		return formError(p.Error, err)
	}
	fmt.Fprintf(c.stdout, "user %d saved\n", *id)
	return nil
}

func cmdDeleteUser(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "delete-user")
	id := fs.Int64("id", 0, "user id")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id <= 0 {
		return errors.New("-id required")
	}
	if !*yes {
		answer, err := c.ask(fmt.Sprintf("delete user %d? type yes", *id), "")
		if err != nil {
			return err
		}
		if answer != "yes" {
			fmt.Fprintln(c.stdout, "cancelled")
			return nil
		}
	}
	p := page.NewUserManagement(c.pages)
	if err := p.Delete(ctx, *id); err != nil {
		return formError(p.Error, err)
	}
	fmt.Fprintf(c.stdout, "user %d deleted; %d users remain\n", *id, len(p.Users))
	return nil
}
