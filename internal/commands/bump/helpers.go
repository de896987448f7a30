package bump

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/transtools/addonbump/internal/addon"
	"github.com/transtools/addonbump/internal/changelog"
	"github.com/transtools/addonbump/internal/config"
	"github.com/transtools/addonbump/internal/parser"
	"github.com/transtools/addonbump/internal/printer"
	"github.com/transtools/addonbump/internal/report"
	"github.com/transtools/addonbump/internal/semver"
)

// options gathers the per-run settings derived from flags and config.
type options struct {
	updateChangelog bool
	updateNews      bool
	addDate         bool
	strictVersions  bool
	dryRun          bool
	assumeYes       bool
	reportPath      string
	excludes        []string
	syncTargets     []config.SyncTargetConfig
}

func optionsFromFlags(cfg *config.Config, cmd *cli.Command) options {
	reportPath := cmd.String("report")
	if reportPath == "" {
		reportPath = cfg.Report
	}

	return options{
		updateChangelog: cmd.Bool("update-changelog"),
		updateNews:      cmd.Bool("update-news"),
		addDate:         cmd.Bool("add-date"),
		strictVersions:  cmd.Bool("strict-versions") || cfg.StrictVersions,
		dryRun:          cmd.Bool("dry-run"),
		assumeYes:       cmd.Bool("yes"),
		reportPath:      reportPath,
		excludes:        cfg.Exclude,
		syncTargets:     cfg.Sync,
	}
}

// plannedBump pairs a loaded manifest with its computed next version.
type plannedBump struct {
	id       string
	dir      string
	manifest *addon.Manifest
	next     semver.SemVersion
}

// planBumps loads every affected manifest and computes the new versions
// before anything is written, so a strict-mode failure leaves no file
// half-updated. Add-on directories without a manifest fall back to a single
// repository-level addon.xml.in (binary add-on layout).
func planBumps(dirs []string, opts options) ([]plannedBump, error) {
	var plan []plannedBump
	missing := false

	for _, dir := range dirs {
		path, err := addon.FindManifest(dir)
		if err != nil {
			missing = true
			continue
		}

		p, err := loadPlanned(dir, path, opts)
		if err != nil {
			return nil, err
		}
		if p != nil {
			plan = append(plan, *p)
		}
	}

	if missing {
		if path := addon.FindTemplateManifest(".", opts.excludes); path != "" {
			printer.PrintFaint("Found " + addon.TemplateManifestFile + ": " + path)
			p, err := loadPlanned(filepath.Dir(path), path, opts)
			if err != nil {
				return nil, err
			}
			if p != nil {
				plan = append(plan, *p)
			}
		} else {
			for _, dir := range dirs {
				if _, err := addon.FindManifest(dir); err != nil {
					printer.PrintWarning(fmt.Sprintf("No manifest found for %q... skipping.", dir))
				}
			}
		}
	}

	return plan, nil
}

// loadPlanned loads a manifest and computes its bump, applying the
// strict-versions policy to unparseable versions.
func loadPlanned(dir, path string, opts options) (*plannedBump, error) {
	m, err := addon.LoadManifest(path)
	if err != nil {
		if opts.strictVersions {
			return nil, err
		}
		printer.PrintWarning(err.Error() + "... skipping.")
		return nil, nil
	}

	id := m.ID
	if id == "" {
		id = filepath.Base(dir)
	}

	return &plannedBump{
		id:       id,
		dir:      dir,
		manifest: m,
		next:     m.Version().BumpPatch(),
	}, nil
}

// planSummary renders the confirmation body shown in interactive runs.
func planSummary(plan []plannedBump) string {
	var sb strings.Builder
	for _, p := range plan {
		fmt.Fprintf(&sb, "%s: %s -> %s\n", p.id, p.manifest.Version(), p.next)
	}
	return sb.String()
}

// applyBumps performs the writes for every planned bump.
func applyBumps(plan []plannedBump, languages []string, opts options) error {
	var bumps []report.Bump

	for _, p := range plan {
		previous := p.manifest.Version().String()
		printer.PrintBold("Updating " + p.manifest.Path)
		printer.PrintFaint(fmt.Sprintf("  Old Version: %s", previous))
		printer.PrintFaint(fmt.Sprintf("  New Version: %s", p.next))

		entry := changelog.Entry(p.next.String(), languages, opts.addDate)

		if !opts.dryRun {
			if err := writeBump(p, entry, opts); err != nil {
				return err
			}
		}

		bumps = append(bumps, report.Bump{
			ID:       p.id,
			Path:     p.manifest.Path,
			Previous: previous,
			Version:  p.next.String(),
		})
	}

	if opts.reportPath != "" && !opts.dryRun {
		if err := report.Write(opts.reportPath, bumps); err != nil {
			return err
		}
		printer.PrintFaint("Wrote report: " + opts.reportPath)
	}

	if opts.dryRun {
		printer.PrintInfo(fmt.Sprintf("Dry run: %d add-on(s) would be bumped.", len(bumps)))
		return nil
	}

	printer.PrintSuccess(fmt.Sprintf("Bumped %d add-on(s).", len(bumps)))
	return nil
}

// writeBump mutates the manifest and its companion files for one add-on.
func writeBump(p plannedBump, entry string, opts options) error {
	p.manifest.SetVersion(p.next)

	if opts.updateNews {
		if !p.manifest.InsertNews(entry) {
			printer.PrintWarning(fmt.Sprintf("Manifest %q has no <news> element... skipping news update.", p.manifest.Path))
		}
	}

	if err := p.manifest.Save(); err != nil {
		return err
	}

	if opts.updateChangelog {
		if err := updateChangelog(p, entry, opts.excludes); err != nil {
			return err
		}
	}

	return syncVersion(p, opts.syncTargets)
}

// updateChangelog prepends the entry to the add-on's changelog.txt when one
// exists. Folder add-ons keep it next to the manifest; the binary layout may
// keep it anywhere below the repository root.
func updateChangelog(p plannedBump, entry string, excludes []string) error {
	path := filepath.Join(p.dir, "changelog.txt")
	if _, err := os.Stat(path); err != nil {
		path = addon.FindChangelog(".", excludes)
	}
	if path == "" {
		printer.PrintWarning(fmt.Sprintf("No changelog.txt found for %q... skipping changelog update.", p.id))
		return nil
	}

	if err := changelog.Prepend(path, entry); err != nil {
		return err
	}
	printer.PrintFaint("  Updated " + path)
	return nil
}

// syncVersion writes the new version into configured sync targets that exist
// in the add-on directory.
func syncVersion(p plannedBump, targets []config.SyncTargetConfig) error {
	for _, t := range targets {
		format, err := parser.ParseFormat(t.Format)
		if err != nil {
			return err
		}

		path := filepath.Join(p.dir, t.Path)
		if _, err := os.Stat(path); err != nil {
			continue // target not present in this add-on
		}

		target := parser.Target{
			Path:    path,
			Format:  format,
			Field:   t.Field,
			Pattern: t.Pattern,
		}
		if err := parser.Write(target, p.next.String()); err != nil {
			return err
		}
		printer.PrintFaint("  Synced " + path)
	}

	return nil
}
