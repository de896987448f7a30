package scan

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/transtools/addonbump/internal/printer"
)

// OutputFormat controls how scan results are displayed.
type OutputFormat string

const (
	// FormatText outputs human-readable text.
	FormatText OutputFormat = "text"

	// FormatJSON outputs machine-readable JSON.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs tabular data.
	FormatTable OutputFormat = "table"
)

// ParseOutputFormat converts a string to OutputFormat.
func ParseOutputFormat(s string) OutputFormat {
	switch s {
	case "json":
		return FormatJSON
	case "table":
		return FormatTable
	default:
		return FormatText
	}
}

// Formatter handles display of scan results.
type Formatter struct {
	format OutputFormat
}

// NewFormatter creates a new Formatter with the specified output format.
func NewFormatter(format OutputFormat) *Formatter {
	return &Formatter{format: format}
}

// FormatResult formats the scan result for display.
func (f *Formatter) FormatResult(result *Result) string {
	switch f.format {
	case FormatJSON:
		return f.formatJSON(result)
	case FormatTable:
		return f.formatTable(result)
	default:
		return f.formatText(result)
	}
}

// formatText formats the result as human-readable text.
func (f *Formatter) formatText(result *Result) string {
	var sb strings.Builder

	if len(result.Addons) == 0 {
		sb.WriteString(printer.Faint("No modified add-ons found."))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(printer.Info("Affected add-ons:"))
	sb.WriteString("\n")
	for _, a := range result.Addons {
		if a.Missing {
			fmt.Fprintf(&sb, "  %s %s %s\n",
				printer.Warning("!"), a.Dir, printer.Faint("(no manifest)"))
			continue
		}
		fmt.Fprintf(&sb, "  %s %s %s\n",
			printer.Success("+"), a.Dir, printer.Faint(fmt.Sprintf("(%s)", a.Version)))
	}

	if len(result.Languages) > 0 {
		sb.WriteString("\n")
		sb.WriteString(printer.Info("Modified languages:"))
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s\n", strings.Join(result.Languages, ", "))
	}

	sb.WriteString("\n")
	sb.WriteString(f.formatSummary(result))
	sb.WriteString("\n")

	return sb.String()
}

// formatTable formats the result as a table.
func (f *Formatter) formatTable(result *Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%-35s %-15s %-30s\n", "ADD-ON", "VERSION", "MANIFEST")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, a := range result.Addons {
		version := a.Version
		manifest := a.ManifestPath
		if a.Missing {
			version = "-"
			manifest = "(not found)"
		}
		fmt.Fprintf(&sb, "%-35s %-15s %-30s\n", a.Dir, version, manifest)
	}

	sb.WriteString("\n")
	sb.WriteString(f.formatSummary(result))
	sb.WriteString("\n")

	return sb.String()
}

// formatJSON formats the result as JSON.
func (f *Formatter) formatJSON(result *Result) string {
	type jsonAddon struct {
		Dir      string `json:"dir"`
		Manifest string `json:"manifest,omitempty"`
		Version  string `json:"version,omitempty"`
		Missing  bool   `json:"missing"`
	}

	output := struct {
		Addons    []jsonAddon `json:"addons"`
		Languages []string    `json:"languages"`
		Count     int         `json:"count"`
	}{
		Addons:    make([]jsonAddon, len(result.Addons)),
		Languages: result.Languages,
		Count:     len(result.Addons),
	}
	if output.Languages == nil {
		output.Languages = []string{}
	}

	for i, a := range result.Addons {
		output.Addons[i] = jsonAddon{
			Dir:      a.Dir,
			Manifest: a.ManifestPath,
			Version:  a.Version,
			Missing:  a.Missing,
		}
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
		return ""
	}

	return string(data)
}

// formatSummary returns a summary line for the result.
func (f *Formatter) formatSummary(result *Result) string {
	missing := 0
	for _, a := range result.Addons {
		if a.Missing {
			missing++
		}
	}

	summary := fmt.Sprintf("Found: %d add-on(s), %d language(s)", len(result.Addons), len(result.Languages))
	if missing > 0 {
		summary += ", " + printer.Warning(fmt.Sprintf("%d without manifest", missing))
	}

	return summary
}

// PrintResult prints the formatted result to stdout.
func (f *Formatter) PrintResult(result *Result) {
	fmt.Print(f.FormatResult(result))
}
