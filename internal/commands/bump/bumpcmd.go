package bump

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/transtools/addonbump/internal/changedfiles"
	"github.com/transtools/addonbump/internal/config"
	"github.com/transtools/addonbump/internal/printer"
	"github.com/transtools/addonbump/internal/tui"
)

// Run returns the "bump" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "bump",
		Usage:     "Increment versions of add-ons with changed language files",
		UsageText: "addonbump bump <files.json> [--flags]\n   addonbump bump --all [--flags]",
		ArgsUsage: "<files.json | all>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "update-changelog",
				Aliases: []string{"c"},
				Usage:   "Prepend a translation entry to each add-on's changelog.txt",
			},
			&cli.BoolFlag{
				Name:    "update-news",
				Aliases: []string{"n"},
				Usage:   "Insert the translation entry into the manifest <news> element",
			},
			&cli.BoolFlag{
				Name:    "add-date",
				Aliases: []string{"d"},
				Usage:   `Add the date to the version heading, e.g. "v1.0.1 (2021-07-17)"`,
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Bump every language add-on directory instead of reading a changed-file list",
			},
			&cli.BoolFlag{
				Name:  "strict-versions",
				Usage: "Abort the whole run when any manifest version cannot be parsed",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write a JSON bump report to the given path",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Show what would change without writing any file",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the interactive confirmation",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBump(ctx, cfg, cmd)
		},
	}
}

// runBump is the single-pass batch transform: changed files in, bumped
// manifests (plus optional changelog/news/sync/report) out.
func runBump(_ context.Context, cfg *config.Config, cmd *cli.Command) error {
	files, err := resolveChangedFiles(cfg, cmd)
	if err != nil {
		return err
	}

	dirs := changedfiles.AddonDirs(files, cfg.LanguagePrefix)
	if len(dirs) == 0 {
		printer.PrintInfo("No modified add-ons found.")
		return nil
	}

	printer.PrintInfo("Files were modified in the following add-ons:")
	for _, dir := range dirs {
		printer.PrintFaint("  " + dir)
	}
	fmt.Println()

	languages := changedfiles.Languages(files, cfg.LanguagePrefix)
	opts := optionsFromFlags(cfg, cmd)

	plan, err := planBumps(dirs, opts)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		printer.PrintWarning("No manifests could be updated.")
		return nil
	}

	if !opts.dryRun && !opts.assumeYes && tui.IsInteractive() {
		ok, err := tui.Confirm(
			fmt.Sprintf("Bump %d add-on manifest(s)?", len(plan)),
			planSummary(plan),
		)
		if err != nil {
			return err
		}
		if !ok {
			printer.PrintFaint("Aborted.")
			return nil
		}
	}

	return applyBumps(plan, languages, opts)
}

// resolveChangedFiles loads the changed-file list from the positional JSON
// argument, or synthesizes one covering every language add-on for --all.
func resolveChangedFiles(cfg *config.Config, cmd *cli.Command) ([]string, error) {
	arg := cmd.Args().First()

	if cmd.Bool("all") || arg == "all" {
		var files []string
		var err error
		spinErr := tui.WithSpinner("Scanning add-on directories...", func() {
			files, err = changedfiles.SynthesizeAll(".", cfg.LanguagePrefix)
		})
		if spinErr != nil {
			return nil, spinErr
		}
		return files, err
	}

	if arg == "" {
		return nil, fmt.Errorf("expected a path to a changed-files JSON or --all")
	}

	return changedfiles.Load(arg, cfg.FilesField)
}
