package authstate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equitydash/equitydash/internal/models"
)

var errInvalid = errors.New("invalid email or password")

// fakeGateway is an in-memory gateway; block, when set, holds Authenticate
// until it is closed
type fakeGateway struct {
	mu      sync.Mutex
	user    models.User
	hasUser bool
	token   bool
	accept  models.Credentials
	block   chan struct{}
	entered chan struct{}
}

func (g *fakeGateway) Authenticate(ctx context.Context, creds models.Credentials) (models.User, error) {
	if g.entered != nil {
		close(g.entered)
	}
	if g.block != nil {
		<-g.block
	}
	if creds != g.accept {
		return models.User{}, errInvalid
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user = models.User{ID: "123", Name: "Demo User", Email: creds.Email}
	g.hasUser, g.token = true, true
	return g.user, nil
}

func (g *fakeGateway) Logout(context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.user, g.hasUser, g.token = models.User{}, false, false
}

func (g *fakeGateway) CurrentUser(context.Context) (models.User, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.user, g.hasUser
}

func (g *fakeGateway) IsAuthenticated(context.Context) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

var demo = models.Credentials{Email: "demo@example.com", Password: "password"}

func TestProvider_LoadingUntilInit(t *testing.T) {
	p := New(&fakeGateway{}, zerolog.Nop())
	assert.True(t, p.State().Loading)

	p.Init(context.Background())
	s := p.State()
	assert.False(t, s.Loading)
	assert.False(t, s.IsAuthenticated)
	_, ok := s.CurrentUser()
	assert.False(t, ok)
}

func TestProvider_InitHydratesExistingSession(t *testing.T) {
	gw := &fakeGateway{user: models.User{ID: "u-1", Name: "Jane"}, hasUser: true, token: true}
	p := New(gw, zerolog.Nop())

	var seen []State
	p.Subscribe(func(s State) { seen = append(seen, s) })

	p.Init(context.Background())
	p.Init(context.Background())

	require.Len(t, seen, 2, "Init should run once and notify loading then resolved")
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.True(t, seen[1].IsAuthenticated)
	assert.Equal(t, "Jane", seen[1].User.Name)
}

func TestProvider_LoginSuccess(t *testing.T) {
	p := New(&fakeGateway{accept: demo}, zerolog.Nop())
	p.Init(context.Background())

	var seen []State
	p.Subscribe(func(s State) { seen = append(seen, s) })

	user, err := p.Login(context.Background(), demo)
	require.NoError(t, err)
	assert.Equal(t, "Demo User", user.Name)

	require.Len(t, seen, 2)
	assert.True(t, seen[0].Loading)
	assert.False(t, seen[1].Loading)
	assert.True(t, seen[1].IsAuthenticated)

	current, ok := p.State().CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Demo User", current.Name)
}

func TestProvider_LoginFailureClearsLoading(t *testing.T) {
	p := New(&fakeGateway{accept: demo}, zerolog.Nop())
	p.Init(context.Background())

	_, err := p.Login(context.Background(), models.Credentials{Email: "x@x.com", Password: "wrong"})
	require.ErrorIs(t, err, errInvalid)

	s := p.State()
	assert.False(t, s.Loading)
	assert.False(t, s.IsAuthenticated)
	assert.False(t, s.HasUser)
}

func TestProvider_RejectsConcurrentLogin(t *testing.T) {
	gw := &fakeGateway{accept: demo, block: make(chan struct{}), entered: make(chan struct{})}
	p := New(gw, zerolog.Nop())
	p.Init(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := p.Login(context.Background(), demo)
		done <- err
	}()

	<-gw.entered
	assert.True(t, p.State().Loading)

	_, err := p.Login(context.Background(), demo)
	require.ErrorIs(t, err, ErrLoginInProgress)

	close(gw.block)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first login did not complete")
	}
	assert.False(t, p.State().Loading)
	assert.True(t, p.State().IsAuthenticated)
}

func TestProvider_Logout(t *testing.T) {
	gw := &fakeGateway{accept: demo}
	p := New(gw, zerolog.Nop())
	p.Init(context.Background())
	_, err := p.Login(context.Background(), demo)
	require.NoError(t, err)

	p.Logout(context.Background())

	s := p.State()
	assert.False(t, s.IsAuthenticated)
	assert.False(t, s.HasUser)
	assert.False(t, gw.IsAuthenticated(context.Background()))
}

func TestProvider_Unsubscribe(t *testing.T) {
	p := New(&fakeGateway{}, zerolog.Nop())

	calls := 0
	unsubscribe := p.Subscribe(func(State) { calls++ })
	unsubscribe()

	p.Init(context.Background())
	assert.Zero(t, calls)
}

func TestProvider_WaitResolved(t *testing.T) {
	p := New(&fakeGateway{}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.WaitResolved(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go p.Init(context.Background())

	s, err := p.WaitResolved(context.Background())
	require.NoError(t, err)
	assert.False(t, s.Loading)
}
