package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/equitydash/equitydash/internal/auth"
	"github.com/equitydash/equitydash/internal/authstate"
	"github.com/equitydash/equitydash/internal/cli/client"
	"github.com/equitydash/equitydash/internal/config"
	"github.com/equitydash/equitydash/internal/guard"
	"github.com/equitydash/equitydash/internal/session"
	"github.com/equitydash/equitydash/internal/stock"
	"github.com/equitydash/equitydash/internal/view"
)

var errNotAuthenticated = errors.New("not authenticated. Please run 'equitydash login' first")

// Env holds everything a command needs, built once per process run
type Env struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    *session.Store
	Client   *client.Client
	Gateway  *auth.Gateway
	Provider *authstate.Provider
	Stocks   *stock.Service
	Prompter view.Prompter
	Out      io.Writer
}

// EnvFunc returns the Env of the running command
type EnvFunc func() *Env

// NewEnv wires the session store, API client, gateway, provider and stock
// service on top of backend
func NewEnv(cfg *config.Config, backend session.Backend, log zerolog.Logger, out io.Writer, prompter view.Prompter) (*Env, error) {
	policy, err := auth.ParseFallbackPolicy(cfg.Auth.Fallback)
	if err != nil {
		return nil, err
	}

	store := session.NewStore(backend, log)
	api := client.New(cfg.API.URL, client.WithTimeout(cfg.API.Timeout))
	gateway := auth.NewGateway(api, store, policy, log)
	api.SetTokenSource(gateway)

	return &Env{
		Config:   cfg,
		Logger:   log,
		Store:    store,
		Client:   api,
		Gateway:  gateway,
		Provider: authstate.New(gateway, log),
		Stocks:   stock.NewService(api, log),
		Prompter: prompter,
		Out:      out,
	}, nil
}

// Close releases the session backend
func (e *Env) Close() error {
	return e.Store.Close()
}

// requireSession hydrates the provider and applies the route guard
func (e *Env) requireSession(ctx context.Context) (authstate.State, error) {
	e.Provider.Init(ctx)

	state, err := e.Provider.WaitResolved(ctx)
	if err != nil {
		return state, err
	}

	if guard.Decide(state).Outcome != guard.Authorized {
		return state, errNotAuthenticated
	}
	return state, nil
}

func (e *Env) printf(format string, args ...any) {
	fmt.Fprintf(e.Out, format, args...)
}
