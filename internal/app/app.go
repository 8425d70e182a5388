package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/equitydash/equitydash/internal/authstate"
	"github.com/equitydash/equitydash/internal/guard"
	"github.com/equitydash/equitydash/internal/models"
	"github.com/equitydash/equitydash/internal/stock"
	"github.com/equitydash/equitydash/internal/view"
)

const (
	menuSignOut = "Sign out"
	menuBack    = "Back"
	menuQuit    = "Quit"
)

var errQuit = errors.New("quit")

// SessionProvider is the auth state the application loop reads and drives
type SessionProvider interface {
	Init(ctx context.Context)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	Logout(ctx context.Context)
	State() authstate.State
	WaitResolved(ctx context.Context) (authstate.State, error)
}

// DashboardLoader fetches everything the dashboard shows
type DashboardLoader interface {
	Dashboard(ctx context.Context) (*stock.Dashboard, error)
}

// App is the interactive terminal application
type App struct {
	out      io.Writer
	prompter view.Prompter
	provider SessionProvider
	stocks   DashboardLoader
	history  *History
	logger   zerolog.Logger
}

// New creates the application
func New(out io.Writer, prompter view.Prompter, provider SessionProvider, stocks DashboardLoader, log zerolog.Logger) *App {
	return &App{
		out:      out,
		prompter: prompter,
		provider: provider,
		stocks:   stocks,
		history:  NewHistory(RootPath),
		logger:   log,
	}
}

// History exposes the navigation stack
func (a *App) History() *History {
	return a.history
}

// Run hydrates the session and serves routes starting at start until the
// user quits or ctx is done. Quitting from a prompt is not an error.
func (a *App) Run(ctx context.Context, start string) error {
	a.history = NewHistory(start)
	a.provider.Init(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		route, redirect := Resolve(a.history.Current())
		if redirect {
			a.logger.Debug().Str("from", a.history.Current()).Str("to", route).Msg("Redirecting")
			a.history.Replace(route)
			continue
		}

		var err error
		switch route {
		case LoginPath:
			err = a.serveLogin(ctx)
		case DashboardPath:
			err = a.serveProtected(ctx, a.serveDashboard)
		}

		switch {
		case errors.Is(err, errQuit), errors.Is(err, view.ErrAborted):
			return nil
		case err != nil:
			return err
		}
	}
}

// serveProtected runs serve only when the guard authorizes it
func (a *App) serveProtected(ctx context.Context, serve func(context.Context) error) error {
	decision := guard.Decide(a.provider.State())

	switch decision.Outcome {
	case guard.Resolving:
		view.RenderWaiting(a.out)
		_, err := a.provider.WaitResolved(ctx)
		return err
	case guard.Unauthorized:
		r, _ := decision.Redirect()
		a.history.navigate(r)
		return nil
	default:
		return serve(ctx)
	}
}

func (a *App) serveLogin(ctx context.Context) error {
	ok, err := view.NewLogin(a.out, a.prompter, a.provider).Run(ctx, "")
	if err != nil {
		return err
	}
	if ok {
		a.history.Push(DashboardPath)
	}
	return nil
}

func (a *App) serveDashboard(ctx context.Context) error {
	view.RenderWaiting(a.out)
	d, err := a.stocks.Dashboard(ctx)
	if err != nil {
		return err
	}

	user, hasUser := a.provider.State().CurrentUser()
	tab := view.TabBalances

	for {
		view.RenderWelcome(a.out, user, hasUser)
		view.RenderTabBar(a.out, tab)
		view.RenderTab(a.out, d, tab)
		fmt.Fprintln(a.out)

		items := make([]string, 0, len(view.Tabs)+3)
		for _, t := range view.Tabs {
			items = append(items, t.String())
		}
		items = append(items, menuSignOut)
		if a.history.CanGoBack() {
			items = append(items, menuBack)
		}
		items = append(items, menuQuit)

		idx, err := a.prompter.Select("Select a view", items)
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(items) {
			continue
		}
		if idx < len(view.Tabs) {
			tab = view.Tabs[idx]
			continue
		}

		switch items[idx] {
		case menuSignOut:
			a.provider.Logout(ctx)
			fmt.Fprintln(a.out, "Signed out")
			a.history.Push(LoginPath)
			return nil
		case menuBack:
			a.history.Back()
			return nil
		default:
			return errQuit
		}
	}
}
