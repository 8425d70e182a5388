// Package authstate holds the process-wide authentication state.
//
// A Provider is created once per run, hydrated from the session store by
// Init, and mutated only through Init, Login and Logout. Views observe it
// through State snapshots and Subscribe callbacks.
package authstate

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/equitydash/equitydash/internal/models"
)

var ErrLoginInProgress = errors.New("login already in progress")

// State is a snapshot of the authentication state
type State struct {
	User            models.User
	HasUser         bool
	IsAuthenticated bool
	// Loading is true until Init completes and while a login is in flight
	Loading bool
}

// CurrentUser returns the signed-in user, if known
func (s State) CurrentUser() (models.User, bool) {
	return s.User, s.HasUser
}

// Gateway is the subset of the auth gateway the provider delegates to
type Gateway interface {
	Authenticate(ctx context.Context, creds models.Credentials) (models.User, error)
	Logout(ctx context.Context)
	CurrentUser(ctx context.Context) (models.User, bool)
	IsAuthenticated(ctx context.Context) bool
}

// Provider is the single writer of authentication state
type Provider struct {
	gateway Gateway
	logger  zerolog.Logger

	mu          sync.Mutex
	state       State
	initialized bool
	loggingIn   bool
	subscribers map[int]func(State)
	nextID      int
}

// New creates a provider. Its state reports Loading until Init runs.
func New(gateway Gateway, log zerolog.Logger) *Provider {
	return &Provider{
		gateway:     gateway,
		logger:      log,
		state:       State{Loading: true},
		subscribers: make(map[int]func(State)),
	}
}

// Init hydrates the state from the session store. Only local persistence is
// consulted. Calls after the first are no-ops.
func (p *Provider) Init(ctx context.Context) {
	p.mu.Lock()
	if p.initialized {
		p.mu.Unlock()
		return
	}
	p.initialized = true
	p.mu.Unlock()

	p.update(func(s *State) { s.Loading = true })

	user, hasUser := p.gateway.CurrentUser(ctx)
	authenticated := p.gateway.IsAuthenticated(ctx)

	p.update(func(s *State) {
		s.User = user
		s.HasUser = hasUser
		s.IsAuthenticated = authenticated
		s.Loading = false
	})

	p.logger.Debug().Bool("authenticated", authenticated).Msg("Session hydrated")
}

// Login authenticates through the gateway. Loading is cleared on every exit
// path. A second call while one is in flight fails with ErrLoginInProgress.
func (p *Provider) Login(ctx context.Context, creds models.Credentials) (user models.User, err error) {
	if !p.beginLogin() {
		return models.User{}, ErrLoginInProgress
	}

	defer func() {
		// isAuthenticated follows the store, so a failed login leaves it as it was
		authenticated := p.gateway.IsAuthenticated(ctx)
		p.update(func(s *State) {
			if err == nil {
				s.User = user
				s.HasUser = true
			}
			s.IsAuthenticated = authenticated
			s.Loading = false
			p.loggingIn = false
		})
	}()

	return p.gateway.Authenticate(ctx, creds)
}

// Logout clears the session and the in-memory user
func (p *Provider) Logout(ctx context.Context) {
	p.gateway.Logout(ctx)
	p.update(func(s *State) {
		s.User = models.User{}
		s.HasUser = false
		s.IsAuthenticated = false
	})
}

// State returns the current snapshot
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Subscribe registers fn to be called with every new state.
// The returned function unregisters it.
func (p *Provider) Subscribe(fn func(State)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

// WaitResolved blocks until the state is no longer loading
func (p *Provider) WaitResolved(ctx context.Context) (State, error) {
	resolved := make(chan State, 1)
	unsubscribe := p.Subscribe(func(s State) {
		if !s.Loading {
			select {
			case resolved <- s:
			default:
			}
		}
	})
	defer unsubscribe()

	if s := p.State(); !s.Loading {
		return s, nil
	}

	select {
	case s := <-resolved:
		return s, nil
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}
}

func (p *Provider) beginLogin() bool {
	p.mu.Lock()
	if p.loggingIn {
		p.mu.Unlock()
		return false
	}
	p.loggingIn = true
	p.mu.Unlock()

	p.update(func(s *State) { s.Loading = true })
	return true
}

// update applies fn under the lock, then notifies subscribers in
// registration order outside it
func (p *Provider) update(fn func(*State)) {
	p.mu.Lock()
	fn(&p.state)
	snapshot := p.state

	ids := make([]int, 0, len(p.subscribers))
	for id := range p.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subscribers := make([]func(State), 0, len(ids))
	for _, id := range ids {
		subscribers = append(subscribers, p.subscribers[id])
	}
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}
