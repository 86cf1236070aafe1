// Package app wires the client stack from a Config.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/api"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/config"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/credential"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/notify"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/page"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/session"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
	"github.com/ovaphlow/pitchfork/foster-client-go/pkg/database"
	"github.com/ovaphlow/pitchfork/foster-client-go/pkg/utilities"
)

type App struct {
	Logger  *zap.SugaredLogger
	Store   *credential.Store
	Router  *view.Router
	Client  *api.Client
	Session *session.Manager

	base *zap.Logger
	db   *sqlx.DB
}

// Options override parts of the wiring. Zero values use the defaults.
type Options struct {
	Logger *zap.Logger
	// Notices receives notifications; stderr when nil.
	Notices io.Writer
}

// New builds the stack and initializes the session. A persisted credential
// is verified against the backend before New returns.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	a := &App{base: opts.Logger}
	if a.base == nil {
		lg, err := utilities.Init(cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		a.base = lg
	}
	a.Logger = a.base.Sugar()

	backend, err := a.credentialBackend(ctx, cfg)
	if err != nil {
		return nil, multierr.Append(err, a.Close())
	}
	a.Store = credential.NewStore(backend, nil, a.Logger)

	out := opts.Notices
	if out == nil {
		out = os.Stderr
	}
	notifier := notify.NewLogger(a.Logger, notify.NewWriter(out))

	a.Router = view.NewRouter(func(path string) {
		a.Logger.Debugw("navigate", "route", path)
	})

	a.Client, err = api.New(api.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
	}, a.Store, notifier, a.Router, a.Logger)
	if err != nil {
		return nil, multierr.Append(err, a.Close())
	}
	a.Session = session.NewManager(a.Client.Auth, a.Store, a.Logger)
	a.Client.OnUnauthorized(a.Session.Logout)
	a.Session.Initialize(ctx)

	a.Logger.Debugw("client ready",
		"api", a.Client.BaseURL(),
		"credential_store", cfg.CredentialStore,
		"authenticated", a.Session.IsAuthenticated(),
	)
	return a, nil
}

func (a *App) credentialBackend(ctx context.Context, cfg config.Config) (credential.Backend, error) {
	switch cfg.CredentialStore {
	case config.StorePostgres:
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.db = db
		b, err := credential.NewSQLBackend(db, cfg.CredentialProfile)
		if err != nil {
			return nil, err
		}
		if err := b.EnsureTable(ctx); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return credential.NewFileBackend(cfg.CredentialFile, cfg.CredentialPassword)
	}
}

// Pages returns the dependencies page controllers are built from.
func (a *App) Pages() page.Deps {
	return page.Deps{Client: a.Client, Session: a.Session, Nav: a.Router}
}

// Close flushes the logger and closes the database, if any.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = multierr.Append(err, a.db.Close())
	}
	if a.base != nil {
		// stderr sync fails on some terminals
		if serr := a.base.Sync(); serr != nil && !isSyncNoise(serr) {
			err = multierr.Append(err, serr)
		}
	}
	return err
}
