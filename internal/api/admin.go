package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// AdminAPI covers user management under /auth/admin.
type AdminAPI struct{ c *Client }

func (a *AdminAPI) Stats(ctx context.Context) (*entity.AdminStats, error) {
	var out entity.AdminStats
	if err := a.c.do(ctx, request{method: http.MethodGet, path: "/auth/admin/stats"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AdminAPI) Users(ctx context.Context, q entity.UserQuery) ([]entity.User, error) {
	var out []entity.User
	if err := a.c.do(ctx, request{method: http.MethodGet, path: "/auth/admin/users", query: q.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AdminAPI) UpdateUser(ctx context.Context, id int64, upd entity.AdminUserUpdate) (*entity.User, error) {
	var out entity.User
	if err := a.c.do(ctx, request{method: http.MethodPut, path: fmt.Sprintf("/auth/admin/users/%d", id), body: upd}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole changes only the user_type of an account.
func (a *AdminAPI) UpdateRole(ctx context.Context, id int64, role entity.UserType) (*entity.User, error) {
	return a.UpdateUser(ctx, id, entity.AdminUserUpdate{UserType: &role})
}

func (a *AdminAPI) DeleteUser(ctx context.Context, id int64) error {
	return a.c.do(ctx, request{method: http.MethodDelete, path: fmt.Sprintf("/auth/admin/users/%d", id)}, nil)
}
