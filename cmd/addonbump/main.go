package main

import (
	"context"
	"os"

	"github.com/transtools/addonbump/internal/cli"
	"github.com/transtools/addonbump/internal/config"
	"github.com/transtools/addonbump/internal/printer"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI loads the configuration and runs the root command. Split out from
// main so tests can drive the full CLI without spawning a process.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return err
	}

	return cli.New(cfg).Run(context.Background(), args)
}
