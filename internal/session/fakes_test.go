package session

import (
	"context"
	"errors"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/entity"
)

type fakeAuth struct {
	meFunc       func(ctx context.Context) (*entity.User, error)
	loginFunc    func(ctx context.Context, c entity.Credentials) (*entity.AuthResponse, error)
	registerFunc func(ctx context.Context, r entity.Registration) (*entity.AuthResponse, error)

	meCalls int
}

func (f *fakeAuth) Me(ctx context.Context) (*entity.User, error) {
	f.meCalls++
	if f.meFunc == nil {
		return nil, errors.New("not implemented")
	}
	return f.meFunc(ctx)
}

func (f *fakeAuth) Login(ctx context.Context, c entity.Credentials) (*entity.AuthResponse, error) {
	if f.loginFunc == nil {
		return nil, errors.New("not implemented")
	}
	return f.loginFunc(ctx, c)
}

func (f *fakeAuth) Register(ctx context.Context, r entity.Registration) (*entity.AuthResponse, error) {
	if f.registerFunc == nil {
		return nil, errors.New("not implemented")
	}
	return f.registerFunc(ctx, r)
}
