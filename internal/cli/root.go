package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/equitydash/equitydash/internal/cli/commands"
	"github.com/equitydash/equitydash/internal/config"
	"github.com/equitydash/equitydash/internal/logger"
	"github.com/equitydash/equitydash/internal/session"
	"github.com/equitydash/equitydash/internal/view"
)

var version = "dev" // Will be set during build

func newRootCmd() (*cobra.Command, func()) {
	var (
		apiURL         string
		sessionBackend string
		logLevel       string
		env            *commands.Env
	)
	envFn := func() *commands.Env { return env }

	rootCmd := &cobra.Command{
		Use:   "equitydash",
		Short: "Employee Stock Dashboard",
		Long: `equitydash - view your stock balances, vesting schedules and
transaction history from the terminal.

Run without a subcommand to start the interactive dashboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Commands that only touch the config file skip session setup
			if !needsEnv(cmd) {
				return nil
			}

			cfg, err := config.Load(map[string]string{
				"EQUITYDASH_API_URL": apiURL,
				"SESSION_BACKEND":    sessionBackend,
				"LOG_LEVEL":          logLevel,
			})
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			logger.Init(cfg.Logging.Level, cfg.Logging.Format)
			log := logger.GetLogger()

			backend, err := session.Open(cfg)
			if err != nil {
				return fmt.Errorf("failed to open session store: %w", err)
			}

			out := cmd.OutOrStdout()
			env, err = commands.NewEnv(cfg, backend, log, out, view.NewTerminalPrompter(out))
			if err != nil {
				backend.Close()
				return err
			}

			log.Debug().
				Str("api_url", cfg.API.URL).
				Str("session_backend", cfg.Session.Backend).
				Str("auth_fallback", cfg.Auth.Fallback).
				Msg("Configuration loaded")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunApp(cmd, env)
		},
	}

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (or set EQUITYDASH_API_URL)")
	rootCmd.PersistentFlags().StringVar(&sessionBackend, "session-backend", "", "Session storage: file, keyring, sqlite or memory (or set SESSION_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (or set LOG_LEVEL)")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "equitydash version %s\n", version)
		},
	})

	// Add all subcommands
	rootCmd.AddCommand(commands.NewLoginCmd(envFn))
	rootCmd.AddCommand(commands.NewLogoutCmd(envFn))
	rootCmd.AddCommand(commands.NewWhoamiCmd(envFn))
	rootCmd.AddCommand(commands.NewDashboardCmd(envFn))
	rootCmd.AddCommand(commands.NewConfigCmd())

	cleanup := func() {
		if env != nil {
			if err := env.Close(); err != nil {
				env.Logger.Warn().Err(err).Msg("Failed to close session store")
			}
		}
	}
	return rootCmd, cleanup
}

// needsEnv reports whether cmd reads or writes the session
func needsEnv(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "config", "help", "completion":
			return false
		}
	}
	return true
}

// Execute runs the root command
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd, cleanup := newRootCmd()
	defer cleanup()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
