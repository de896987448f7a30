package tui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
)

// Confirm shows a yes/no confirmation prompt and returns the choice.
func Confirm(title, description string) (bool, error) {
	confirmed := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	).WithTheme(bumpTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirmed, nil
}

// WithSpinner runs action behind a spinner when stdout is a terminal,
// or directly otherwise.
func WithSpinner(title string, action func()) error {
	if !IsTTY() {
		action()
		return nil
	}
	return spinner.New().Title(title).Action(action).Run()
}
