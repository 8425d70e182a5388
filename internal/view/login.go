package view

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"

	"github.com/equitydash/equitydash/internal/auth"
	"github.com/equitydash/equitydash/internal/authstate"
	"github.com/equitydash/equitydash/internal/models"
)

const (
	LoginTitle                = "Employee Stock Dashboard"
	InvalidCredentialsMessage = "Invalid email or password"
	MissingFieldsMessage      = "Email and password are required"
	LoginBusyMessage          = "A sign-in is already in progress"
)

// Authenticator is what the login view needs from the session provider
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	State() authstate.State
}

// Login is the sign-in screen
type Login struct {
	out      io.Writer
	prompter Prompter
	auth     Authenticator
	validate *validator.Validate
}

// NewLogin creates the sign-in screen
func NewLogin(out io.Writer, prompter Prompter, auth Authenticator) *Login {
	return &Login{
		out:      out,
		prompter: prompter,
		auth:     auth,
		validate: validator.New(),
	}
}

// Render prints the heading and the demo account hint
func (v *Login) Render() {
	fmt.Fprintf(v.out, "\n%s\n\n", LoginTitle)
	fmt.Fprintln(v.out, "For demo purposes, use:")
	fmt.Fprintf(v.out, "  Email: %s\n", auth.DemoEmail)
	fmt.Fprintf(v.out, "  Password: %s\n\n", auth.DemoPassword)
}

// Run shows the form once and submits it. It reports whether the user is
// now signed in; a rejected sign-in is rendered inline and is not an error.
func (v *Login) Run(ctx context.Context, email string) (bool, error) {
	v.Render()

	email, err := v.prompter.Input("Email Address", email)
	if err != nil {
		return false, err
	}
	password, err := v.prompter.Password("Password")
	if err != nil {
		return false, err
	}

	return v.Submit(ctx, models.Credentials{Email: email, Password: password}), nil
}

// Submit validates and submits creds, printing the outcome.
// It reports whether sign-in succeeded.
func (v *Login) Submit(ctx context.Context, creds models.Credentials) bool {
	if err := v.validate.Struct(creds); err != nil {
		v.showError(MissingFieldsMessage)
		return false
	}

	if v.auth.State().Loading {
		v.showError(LoginBusyMessage)
		return false
	}

	fmt.Fprintln(v.out, "Signing in...")
	user, err := v.auth.Login(ctx, creds)
	if err != nil {
		v.showError(Message(err))
		return false
	}

	fmt.Fprintf(v.out, "✓ Signed in as %s (%s)\n", user.Name, user.Email)
	return true
}

func (v *Login) showError(msg string) {
	fmt.Fprintf(v.out, "✗ %s\n", msg)
}

// Message maps a login error to the text shown to the user
func Message(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return InvalidCredentialsMessage
	case errors.Is(err, authstate.ErrLoginInProgress):
		return LoginBusyMessage
	case errors.Is(err, auth.ErrBackendUnavailable):
		return "Sign-in service is unavailable, please try again later"
	default:
		return InvalidCredentialsMessage
	}
}
