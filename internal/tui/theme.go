package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/transtools/addonbump/internal/console"
)

// bumpTheme returns the huh theme used for all addonbump prompts.
// Colors fall back to terminal defaults on light backgrounds.
func bumpTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.Color("6")
	if !console.HasDarkBackground() {
		accent = lipgloss.Color("4")
	}

	t.Focused.Title = t.Focused.Title.Foreground(accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Faint(true)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("0")).
		Background(accent)
	t.Blurred.Title = t.Blurred.Title.Faint(true)

	return t
}
