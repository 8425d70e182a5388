package commands

import (
	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd(env EnvFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := env()
			e.Provider.Init(cmd.Context())
			e.Provider.Logout(cmd.Context())
			e.printf("✓ Signed out\n")
			return nil
		},
	}
}
