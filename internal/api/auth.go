package api

import (
	"context"
	"net/http"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

// AuthAPI covers /auth.
type AuthAPI struct{ c *Client }

func (a *AuthAPI) Login(ctx context.Context, creds entity.Credentials) (*entity.AuthResponse, error) {
	var out entity.AuthResponse
	if err := a.c.do(ctx, request{method: http.MethodPost, path: "/auth/login", body: creds}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Register(ctx context.Context, reg entity.Registration) (*entity.AuthResponse, error) {
	var out entity.AuthResponse
	if err := a.c.do(ctx, request{method: http.MethodPost, path: "/auth/register", body: reg}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*entity.User, error) {
	var out entity.User
	if err := a.c.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) UpdateProfile(ctx context.Context, upd entity.UserUpdate) (*entity.User, error) {
	var out entity.User
	if err := a.c.do(ctx, request{method: http.MethodPut, path: "/auth/profile", body: upd}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ChangePassword(ctx context.Context, pc entity.PasswordChange) error {
	return a.c.do(ctx, request{method: http.MethodPut, path: "/auth/password", body: pc}, nil)
}
