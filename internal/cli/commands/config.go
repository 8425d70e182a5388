package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/equitydash/equitydash/internal/cli/userconfig"
	"github.com/equitydash/equitydash/internal/config"
)

// NewConfigCmd creates the config command group. It works on the user
// config file only and does not need a session.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings in the user config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the user config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := userconfig.GetConfigPath()
			if err != nil {
				return err
			}
			cfg, err := userconfig.LoadFile(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", path)
			for _, key := range userconfig.Keys() {
				value, _ := cfg.Get(key)
				if value == "" {
					value = "(default)"
				}
				fmt.Fprintf(out, "%s: %s\n", key, value)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: fmt.Sprintf("Set a key (%s)", strings.Join(userconfig.Keys(), ", ")),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := userconfig.Load()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if _, err := config.FromSources(cfg, func(string) string { return "" }); err != nil {
				return err
			}
			if err := userconfig.Save(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}
