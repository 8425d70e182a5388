package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/equitydash/equitydash/internal/view"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd(env EnvFunc) *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Print stock balances, vesting schedules and transaction history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd, env(), tab)
		},
	}

	cmd.Flags().StringVar(&tab, "tab", "all", "Panel to show: balances, vesting, history or all")

	return cmd
}

func runDashboard(cmd *cobra.Command, e *Env, tabName string) error {
	tabs := view.Tabs
	if tabName != "all" {
		tab, err := view.ParseTab(tabName)
		if err != nil {
			return err
		}
		tabs = []view.Tab{tab}
	}

	ctx := cmd.Context()
	state, err := e.requireSession(ctx)
	if err != nil {
		return err
	}

	d, err := e.Stocks.Dashboard(ctx)
	if err != nil {
		return err
	}

	user, hasUser := state.CurrentUser()
	view.RenderWelcome(e.Out, user, hasUser)

	for _, tab := range tabs {
		fmt.Fprintf(e.Out, "\n%s\n\n", tab)
		view.RenderTab(e.Out, d, tab)
	}
	return nil
}
