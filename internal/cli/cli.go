package cli

import (
	"context"
	"fmt"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/transtools/addonbump/internal/commands/bump"
	"github.com/transtools/addonbump/internal/commands/scan"
	"github.com/transtools/addonbump/internal/config"
	"github.com/transtools/addonbump/internal/console"
	"github.com/transtools/addonbump/internal/printer"
	"github.com/transtools/addonbump/internal/version"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the addonbump cli.
func New(cfg *config.Config) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "addonbump",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Version bumper for add-ons with Weblate translation changes",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			console.SetNoColor(noColorFlag)
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: []*urfavecli.Command{
			bump.Run(cfg),
			scan.Run(cfg),
		},
	}
}
