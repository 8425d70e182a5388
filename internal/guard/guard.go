// Package guard decides whether a protected view may render
package guard

import "github.com/equitydash/equitydash/internal/authstate"

// LoginPath is where unauthorized navigation is sent
const LoginPath = "/login"

// Outcome is the guard's verdict for one navigation
type Outcome int

const (
	// Resolving means the session is not known yet; show a waiting indicator
	Resolving Outcome = iota
	// Authorized means the protected view may render
	Authorized
	// Unauthorized means navigation must be redirected to the login view
	Unauthorized
)

func (o Outcome) String() string {
	switch o {
	case Resolving:
		return "resolving"
	case Authorized:
		return "authorized"
	case Unauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Redirect is a navigation instruction. Replace means the current history
// entry is overwritten, so Back cannot return to the protected view.
type Redirect struct {
	To      string
	Replace bool
}

// Decision is the outcome plus, for Unauthorized, where to go
type Decision struct {
	Outcome  Outcome
	redirect Redirect
}

// Redirect returns the redirect for an Unauthorized decision
func (d Decision) Redirect() (Redirect, bool) {
	return d.redirect, d.Outcome == Unauthorized
}

// Decide evaluates the auth state. It holds no state of its own.
func Decide(s authstate.State) Decision {
	switch {
	case s.Loading:
		return Decision{Outcome: Resolving}
	case s.IsAuthenticated:
		return Decision{Outcome: Authorized}
	default:
		return Decision{
			Outcome:  Unauthorized,
			redirect: Redirect{To: LoginPath, Replace: true},
		}
	}
}
