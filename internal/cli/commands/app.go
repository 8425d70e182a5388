package commands

import (
	"github.com/spf13/cobra"

	"github.com/equitydash/equitydash/internal/app"
)

// RunApp starts the interactive application at the root route
func RunApp(cmd *cobra.Command, e *Env) error {
	return app.New(e.Out, e.Prompter, e.Provider, e.Stocks, e.Logger).Run(cmd.Context(), app.RootPath)
}
