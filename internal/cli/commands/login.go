package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/equitydash/equitydash/internal/models"
	"github.com/equitydash/equitydash/internal/view"
)

var errLoginFailed = errors.New("login failed")

// NewLoginCmd creates the login command
func NewLoginCmd(env EnvFunc) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the stock dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, env(), email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set EQUITYDASH_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set EQUITYDASH_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(cmd *cobra.Command, e *Env, email, password string) error {
	ctx := cmd.Context()

	// Check for environment variables (useful for scripts)
	if email == "" {
		email = os.Getenv("EQUITYDASH_EMAIL")
	}
	if password == "" {
		password = os.Getenv("EQUITYDASH_PASSWORD")
	}

	e.Provider.Init(ctx)
	login := view.NewLogin(e.Out, e.Prompter, e.Provider)

	var err error
	if email == "" {
		login.Render()
		if email, err = e.Prompter.Input("Email Address", ""); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = e.Prompter.Password("Password"); err != nil {
			return err
		}
	}

	if !login.Submit(ctx, models.Credentials{Email: email, Password: password}) {
		return errLoginFailed
	}
	return nil
}
