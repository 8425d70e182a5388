package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equitydash/equitydash/internal/auth"
	"github.com/equitydash/equitydash/internal/authstate"
	"github.com/equitydash/equitydash/internal/cli/client"
	"github.com/equitydash/equitydash/internal/guard"
	"github.com/equitydash/equitydash/internal/models"
	"github.com/equitydash/equitydash/internal/session"
	"github.com/equitydash/equitydash/internal/stock"
	"github.com/equitydash/equitydash/internal/view"
)

// scriptedPrompter replays fixed answers and aborts once they run out
type scriptedPrompter struct {
	inputs    []string
	passwords []string
	selects   []string
	menus     [][]string
}

func (p *scriptedPrompter) Input(label, defaultValue string) (string, error) {
	if len(p.inputs) == 0 {
		return "", view.ErrAborted
	}
	v := p.inputs[0]
	p.inputs = p.inputs[1:]
	return v, nil
}

func (p *scriptedPrompter) Password(label string) (string, error) {
	if len(p.passwords) == 0 {
		return "", view.ErrAborted
	}
	v := p.passwords[0]
	p.passwords = p.passwords[1:]
	return v, nil
}

func (p *scriptedPrompter) Select(label string, items []string) (int, error) {
	p.menus = append(p.menus, items)
	if len(p.selects) == 0 {
		return -1, view.ErrAborted
	}
	want := p.selects[0]
	p.selects = p.selects[1:]
	for i, item := range items {
		if item == want {
			return i, nil
		}
	}
	return -1, view.ErrAborted
}

type harness struct {
	app      *App
	out      *bytes.Buffer
	store    *session.Store
	provider *authstate.Provider
}

// newHarness wires the real stack against an API that is down
func newHarness(t *testing.T, prompter view.Prompter) *harness {
	t.Helper()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	log := zerolog.Nop()
	store := session.NewStore(session.NewMemoryBackend(), log)
	api := client.New(srv.URL)
	gateway := auth.NewGateway(api, store, auth.FallbackAlways, log)
	api.SetTokenSource(gateway)

	provider := authstate.New(gateway, log)
	stocks := stock.NewService(api, log)

	out := &bytes.Buffer{}
	return &harness{
		app:      New(out, prompter, provider, stocks, log),
		out:      out,
		store:    store,
		provider: provider,
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path         string
		wantRoute    string
		wantRedirect bool
	}{
		{"/", DashboardPath, true},
		{"/nowhere", DashboardPath, true},
		{"", DashboardPath, true},
		{"/login", LoginPath, false},
		{"/dashboard", DashboardPath, false},
	}

	for _, tt := range tests {
		route, redirect := Resolve(tt.path)
		assert.Equal(t, tt.wantRoute, route, tt.path)
		assert.Equal(t, tt.wantRedirect, redirect, tt.path)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory("/")
	assert.False(t, h.CanGoBack())
	assert.False(t, h.Back())

	h.Replace("/dashboard")
	h.navigate(guard.Redirect{To: "/login", Replace: true})
	assert.Equal(t, []string{"/login"}, h.Entries())

	h.Push("/dashboard")
	assert.Equal(t, "/dashboard", h.Current())
	require.True(t, h.Back())
	assert.Equal(t, "/login", h.Current())
}

func TestRun_UnauthorizedReplacesWithLogin(t *testing.T) {
	h := newHarness(t, &scriptedPrompter{})

	require.NoError(t, h.app.Run(context.Background(), "/dashboard"))

	assert.Equal(t, []string{"/login"}, h.app.History().Entries())
	assert.False(t, h.app.History().CanGoBack())
	assert.Contains(t, h.out.String(), view.LoginTitle)
}

func TestRun_DemoLoginReachesDashboard(t *testing.T) {
	prompter := &scriptedPrompter{
		inputs:    []string{auth.DemoEmail},
		passwords: []string{auth.DemoPassword},
		selects:   []string{"Vesting", "History", menuQuit},
	}
	h := newHarness(t, prompter)
	ctx := context.Background()

	require.NoError(t, h.app.Run(ctx, "/"))

	assert.Equal(t, []string{"/login", "/dashboard"}, h.app.History().Entries())

	output := h.out.String()
	assert.Contains(t, output, "Welcome, Demo User")
	assert.Contains(t, output, "$15,000.00")
	assert.Contains(t, output, "$7,500.00")
	assert.Contains(t, output, "Upcoming")
	assert.Contains(t, output, "Exercise")

	token, ok := h.store.Token(ctx)
	require.True(t, ok)
	assert.Equal(t, auth.DemoToken, token)
	assert.Contains(t, prompter.menus[0], menuBack)
}

func TestRun_InvalidCredentialsStayOnLogin(t *testing.T) {
	prompter := &scriptedPrompter{
		inputs:    []string{"x@x.com"},
		passwords: []string{"wrong"},
	}
	h := newHarness(t, prompter)

	require.NoError(t, h.app.Run(context.Background(), "/login"))

	assert.Contains(t, h.out.String(), view.InvalidCredentialsMessage)
	assert.Equal(t, []string{"/login"}, h.app.History().Entries())
	assert.False(t, h.provider.State().IsAuthenticated)
}

func TestRun_ExistingSessionSignOut(t *testing.T) {
	prompter := &scriptedPrompter{selects: []string{menuSignOut}}
	h := newHarness(t, prompter)
	ctx := context.Background()

	require.NoError(t, h.store.Save(ctx, "stored-token", models.User{ID: "9", Name: "Ada", Email: "ada@example.com", Role: "employee"}))

	require.NoError(t, h.app.Run(ctx, "/"))

	assert.Contains(t, h.out.String(), "Welcome, Ada")
	assert.Contains(t, h.out.String(), "Signed out")
	assert.Equal(t, []string{"/dashboard", "/login"}, h.app.History().Entries())
	assert.NotContains(t, prompter.menus[0], menuBack)

	_, ok := h.store.Token(ctx)
	assert.False(t, ok)
	assert.False(t, h.provider.State().IsAuthenticated)
}

func TestRun_CancelledContext(t *testing.T) {
	h := newHarness(t, &scriptedPrompter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.app.Run(ctx, "/")
	assert.ErrorIs(t, err, context.Canceled)
}
