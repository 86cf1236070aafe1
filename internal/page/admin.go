package page

import (
	"context"
	"fmt"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
	"golang.org/x/sync/errgroup"
)

// AdminPanel reviews shelter applications.
type AdminPanel struct {
	deps Deps

	Pending  []entity.ShelterApplication
	Approved []entity.User
	Error    string
}

func NewAdminPanel(d Deps) *AdminPanel { return &AdminPanel{deps: d} }

// Load fetches pending and approved shelters. Admins only.
func (p *AdminPanel) Load(ctx context.Context) error {
	if _, err := RequireRole(ctx, p.deps.Session, entity.UserTypeAdmin); guard(p.deps.Nav, err) != nil {
		return err
	}
	pending, err := p.deps.Client.Shelters.Pending(ctx)
	if err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	approved, err := p.deps.Client.Shelters.Approved(ctx)
	if err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	p.Error = ""
	p.Pending, p.Approved = pending, approved
	return nil
}

// Decide approves or rejects a pending shelter and reloads both lists.
func (p *AdminPanel) Decide(ctx context.Context, userID int64, approved bool, notes string) error {
	if _, err := RequireRole(ctx, p.deps.Session, entity.UserTypeAdmin); guard(p.deps.Nav, err) != nil {
		return err
	}
	if _, err := p.deps.Client.Shelters.Approve(ctx, entity.ShelterApproval{
		UserID:     userID,
		Approved:   approved,
		AdminNotes: notes,
	}); err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	return p.Load(ctx)
}

// UserEdit is the admin edit form. Password is only sent when non-empty.
type UserEdit struct {
	Name     string
	Email    string
	Phone    string
	Location string
	UserType entity.UserType
	IsActive bool
	Password string
}

// UserManagement lists, edits and deletes accounts.
type UserManagement struct {
	deps Deps

	Query entity.UserQuery
	Users []entity.User
	Stats *entity.AdminStats
	Error string
}

func NewUserManagement(d Deps) *UserManagement { return &UserManagement{deps: d} }

// Load fetches users matching Query and the stats in parallel.
func (p *UserManagement) Load(ctx context.Context) error {
	if _, err := RequireRole(ctx, p.deps.Session, entity.UserTypeAdmin); guard(p.deps.Nav, err) != nil {
		return err
	}
	var (
		users []entity.User
		stats *entity.AdminStats
	)
	// a plain group: one failure must not cancel the sibling request
	var g errgroup.Group
	g.Go(func() error {
		var err error
		users, err = p.deps.Client.Admin.Users(ctx, p.Query)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = p.deps.Client.Admin.Stats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	p.Error = ""
	p.Users, p.Stats = users, stats
	return nil
}

// Delete removes a user and reloads. Confirmation is the caller's job.
func (p *UserManagement) Delete(ctx context.Context, id int64) error {
	if _, err := RequireRole(ctx, p.deps.Session, entity.UserTypeAdmin); guard(p.deps.Nav, err) != nil {
		return err
	}
	if err := p.deps.Client.Admin.DeleteUser(ctx, id); err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	return p.Load(ctx)
}

// Save sends only the fields of edit that differ from the listed user.
// An unchanged form sends nothing.
func (p *UserManagement) Save(ctx context.Context, id int64, edit UserEdit) error {
	if _, err := RequireRole(ctx, p.deps.Session, entity.UserTypeAdmin); guard(p.deps.Nav, err) != nil {
		return err
	}
	var current *entity.User
	for i := range p.Users {
		if p.Users[i].ID == id {
			current = &p.Users[i]
			break
		}
	}
	if current == nil {
		return fmt.Errorf("user %d not loaded", id)
	}
	if edit.Password != "" && len(edit.Password) < MinPasswordLength {
		p.Error = ErrPasswordTooShort.Error()
		return ErrPasswordTooShort
	}
	upd := Diff(*current, edit)
	if upd.Empty() {
		return nil
	}
	if _, err := p.deps.Client.Admin.UpdateUser(ctx, id, upd); err != nil {
		p.Error = api.DetailOf(err, api.GenericMessage)
		return err
	}
	return p.Load(ctx)
}

// Diff builds the partial update that turns u into edit.
func Diff(u entity.User, edit UserEdit) entity.AdminUserUpdate {
	var upd entity.AdminUserUpdate
	if edit.Name != u.Name {
		upd.Name = &edit.Name
	}
	if edit.Email != u.Email {
		upd.Email = &edit.Email
	}
	if edit.Phone != deref(u.Phone) {
		upd.Phone = &edit.Phone
	}
	if edit.Location != deref(u.Location) {
		upd.Location = &edit.Location
	}
	if edit.UserType != "" && edit.UserType != u.UserType {
		upd.UserType = &edit.UserType
	}
	if edit.IsActive != u.IsActive {
		upd.IsActive = &edit.IsActive
	}
	if edit.Password != "" {
		upd.Password = &edit.Password
	}
	return upd
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EditFrom seeds the edit form with the listed values of u.
func EditFrom(u entity.User) UserEdit {
	return UserEdit{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    deref(u.Phone),
		Location: deref(u.Location),
		UserType: u.UserType,
		IsActive: u.IsActive,
	}
}
