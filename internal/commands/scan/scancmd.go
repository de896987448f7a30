// Package scan implements the read-only inspection command: it reports which
// add-ons a changed-file list affects without touching any file.
package scan

import (
	"context"
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/transtools/addonbump/internal/addon"
	"github.com/transtools/addonbump/internal/changedfiles"
	"github.com/transtools/addonbump/internal/config"
)

// Result holds everything scan derives from a changed-file list.
type Result struct {
	Addons    []AddonInfo
	Languages []string
}

// AddonInfo describes one affected add-on directory.
type AddonInfo struct {
	Dir          string
	ManifestPath string
	Version      string
	Missing      bool
}

// Run returns the "scan" command.
func Run(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "List add-ons affected by a changed-file list",
		UsageText: "addonbump scan <files.json> [--format text|json|table]",
		ArgsUsage: "<files.json>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, or table",
				Value:   "text",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runScan(ctx, cfg, cmd)
		},
	}
}

func runScan(_ context.Context, cfg *config.Config, cmd *cli.Command) error {
	jsonPath := cmd.Args().First()
	if jsonPath == "" {
		return errors.New("expected a path to a changed-files JSON")
	}

	files, err := changedfiles.Load(jsonPath, cfg.FilesField)
	if err != nil {
		return err
	}

	result := Collect(files, cfg.LanguagePrefix)

	formatter := NewFormatter(ParseOutputFormat(cmd.String("format")))
	formatter.PrintResult(result)
	return nil
}

// Collect resolves the affected add-ons and their current manifest versions.
func Collect(files []string, prefix string) *Result {
	result := &Result{
		Languages: changedfiles.Languages(files, prefix),
	}

	for _, dir := range changedfiles.AddonDirs(files, prefix) {
		info := AddonInfo{Dir: dir}

		path, err := addon.FindManifest(dir)
		if err != nil {
			info.Missing = true
			result.Addons = append(result.Addons, info)
			continue
		}

		info.ManifestPath = path
		if m, err := addon.LoadManifest(path); err == nil {
			info.Version = m.Version().String()
		}
		result.Addons = append(result.Addons, info)
	}

	return result
}
