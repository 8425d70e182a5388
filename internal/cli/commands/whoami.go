package commands

import (
	"github.com/spf13/cobra"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd(env EnvFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			state, err := e.requireSession(cmd.Context())
			if err != nil {
				return err
			}

			user, ok := state.CurrentUser()
			if !ok {
				e.printf("Signed in (user details unavailable)\n")
				return nil
			}

			e.printf("Name:  %s\n", user.Name)
			e.printf("Email: %s\n", user.Email)
			if user.Role != "" {
				e.printf("Role:  %s\n", user.Role)
			}
			return nil
		},
	}
}
