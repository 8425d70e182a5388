package main

import (
	"os"

	"github.com/equitydash/equitydash/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
