// Package auth exchanges credentials for a persisted session.
//
// Authenticate tries the remote login endpoint first. When that exchange
// cannot complete, the configured FallbackPolicy decides whether the fixed
// demo account is checked instead, so the dashboard stays usable without a
// live backend. Both paths end in the same place: token and user written to
// the session store, user returned.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/equitydash/equitydash/internal/cli/client"
	"github.com/equitydash/equitydash/internal/models"
	"github.com/equitydash/equitydash/internal/session"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBackendUnavailable = errors.New("authentication backend unavailable")
)

// Demo account accepted on the degraded path
const (
	DemoEmail    = "demo@example.com"
	DemoPassword = "password"
	DemoToken    = "mock-jwt-token"
)

// DemoUser returns the synthesized profile for the demo account
func DemoUser(email string) models.User {
	return models.User{
		ID:    "123",
		Name:  "Demo User",
		Email: email,
		Role:  "employee",
	}
}

// LoginClient performs the remote credential exchange
type LoginClient interface {
	Login(ctx context.Context, creds models.Credentials) (*client.LoginResponse, error)
}

// Gateway authenticates users and reads the persisted session
type Gateway struct {
	client LoginClient
	store  *session.Store
	policy FallbackPolicy
	logger zerolog.Logger
}

// NewGateway creates an auth gateway
func NewGateway(c LoginClient, store *session.Store, policy FallbackPolicy, log zerolog.Logger) *Gateway {
	return &Gateway{
		client: c,
		store:  store,
		policy: policy,
		logger: log,
	}
}

// Authenticate exchanges creds for a session and returns the signed-in user.
// On ErrInvalidCredentials the session store is left untouched.
func (g *Gateway) Authenticate(ctx context.Context, creds models.Credentials) (models.User, error) {
	resp, err := g.client.Login(ctx, creds)
	if err == nil {
		if err := g.store.Save(ctx, resp.Token, *resp.User); err != nil {
			return models.User{}, fmt.Errorf("failed to persist session: %w", err)
		}
		g.logger.Info().Str("user_id", resp.User.ID).Msg("User logged in")
		return *resp.User, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return models.User{}, fmt.Errorf("login aborted: %w", ctxErr)
	}

	g.logger.Warn().Err(err).Str("policy", string(g.policy)).Msg("Remote login failed")

	switch g.policy.decide(err) {
	case outcomeReject:
		return models.User{}, ErrInvalidCredentials
	case outcomeUnavailable:
		return models.User{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	return g.authenticateDemo(ctx, creds)
}

func (g *Gateway) authenticateDemo(ctx context.Context, creds models.Credentials) (models.User, error) {
	if creds.Email != DemoEmail || creds.Password != DemoPassword {
		return models.User{}, ErrInvalidCredentials
	}

	user := DemoUser(creds.Email)
	if err := g.store.Save(ctx, DemoToken, user); err != nil {
		return models.User{}, fmt.Errorf("failed to persist demo session: %w", err)
	}

	g.logger.Info().Str("user_id", user.ID).Msg("Demo user logged in")
	return user, nil
}

// Logout clears the persisted session. There is no server-side invalidation.
func (g *Gateway) Logout(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		g.logger.Error().Err(err).Msg("Failed to clear session on logout")
		return
	}
	g.logger.Info().Msg("User logged out")
}

// CurrentUser returns the persisted user, if any
func (g *Gateway) CurrentUser(ctx context.Context) (models.User, bool) {
	return g.store.User(ctx)
}

// IsAuthenticated reports whether a session token is persisted
func (g *Gateway) IsAuthenticated(ctx context.Context) bool {
	return g.store.HasToken(ctx)
}

// Token returns the persisted session token, satisfying client.TokenSource
func (g *Gateway) Token(ctx context.Context) (string, bool) {
	return g.store.Token(ctx)
}
