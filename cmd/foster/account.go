package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/page"
)

func cmdLogin(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := c.ask("password", *password)
	if err != nil {
		return err
	}
	p := page.NewLogin(c.pages)
	if !p.Submit(ctx, *email, pw) {
		return errors.New(p.Error)
	}
	u := c.app.Session.User()
	fmt.Fprintf(c.stdout, "signed in as %s (%s)\n", u.Email, u.UserType)
	return nil
}

func cmdRegister(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "register")
	var f page.RegisterForm
	fs.StringVar(&f.Email, "email", "", "account email")
	fs.StringVar(&f.Name, "name", "", "full name")
	fs.StringVar(&f.Phone, "phone", "", "phone number")
	fs.StringVar(&f.Location, "location", "", "city or region")
	typ := fs.String("type", string(entity.UserTypeFoster), "foster or volunteer")
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := c.ask("password", *password)
	if err != nil {
		return err
	}
	f.Password, f.ConfirmPassword = pw, pw
	if *password == "" {
		if f.ConfirmPassword, err = c.ask("confirm password", ""); err != nil {
			return err
		}
	}
	f.UserType = entity.UserType(*typ)

	p := page.NewRegister(c.pages)
	if !p.Submit(ctx, f) {
		return errors.New(p.Error)
	}
	fmt.Fprintf(c.stdout, "registered and signed in as %s\n", f.Email)
	return nil
}

func cmdLogout(ctx context.Context, c *cli, args []string) error {
	c.app.Session.Logout(ctx)
	fmt.Fprintln(c.stdout, "signed out")
	return nil
}

func cmdWhoami(ctx context.Context, c *cli, args []string) error {
	u, err := page.RequireAuth(ctx, c.app.Session)
	if err != nil {
		return err
	}
	return c.printJSON(u)
}

func cmdProfile(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "profile")
	var name, email, phone, location string
	fs.StringVar(&name, "name", "", "new name")
	fs.StringVar(&email, "email", "", "new email")
	fs.StringVar(&phone, "phone", "", "new phone")
	fs.StringVar(&location, "location", "", "new location")
	if err := fs.Parse(args); err != nil {
		return err
	}
	p := page.NewProfile(c.pages)
	if err := p.Load(ctx); err != nil {
		return err
	}

	var upd entity.UserUpdate
	fs.Visit(func(f *flag.Flag) {
		v := f.Value.String()
		switch f.Name {
		case "name":
			upd.Name = &v
		case "email":
			upd.Email = &v
		case "phone":
			upd.Phone = &v
		case "location":
			upd.Location = &v
		}
	})
	if upd != (entity.UserUpdate{}) {
		if err := p.Save(ctx, upd); err != nil {
			return formError(p.Error, err)
		}
	}
	return c.printJSON(p.User)
}

func cmdPassword(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "password")
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cur, err := c.ask("current password", *current)
	if err != nil {
		return err
	}
	nw, err := c.ask("new password", *next)
	if err != nil {
		return err
	}
	confirm := nw
	if *next == "" {
		if confirm, err = c.ask("confirm new password", ""); err != nil {
			return err
		}
	}
	p := page.NewProfile(c.pages)
	if err := p.ChangePassword(ctx, cur, nw, confirm); err != nil {
		return formError(p.Error, err)
	}
	fmt.Fprintln(c.stdout, p.Success)
	return nil
}

func cmdShelterRegister(ctx context.Context, c *cli, args []string) error {
	fs := newFlags(c, "shelter-register")
	var f page.ShelterRegisterForm
	fs.StringVar(&f.Email, "email", "", "contact email")
	fs.StringVar(&f.Name, "name", "", "contact name")
	fs.StringVar(&f.Phone, "phone", "", "contact phone")
	fs.StringVar(&f.Location, "location", "", "city or region")
	fs.StringVar(&f.ShelterName, "shelter", "", "shelter name")
	fs.StringVar(&f.ShelterLicense, "license", "", "licence number")
	fs.StringVar(&f.ShelterAddress, "address", "", "street address")
	fs.StringVar(&f.ShelterWebsite, "website", "", "website")
	fs.StringVar(&f.ShelterDescription, "description", "", "short description")
	password := fs.String("password", "", "password (read from stdin when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	pw, err := c.ask("password", *password)
	if err != nil {
		return err
	}
	f.Password, f.ConfirmPassword = pw, pw
	if *password == "" {
		if f.ConfirmPassword, err = c.ask("confirm password", ""); err != nil {
			return err
		}
	}
	p := page.NewShelterRegister(c.pages)
	if err := p.Submit(ctx, f); err != nil {
		return formError(p.Error, err)
	}
	fmt.Fprintln(c.stdout, p.Success)
	return nil
}
