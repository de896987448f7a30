// Package console centralizes terminal color-profile handling.
package console

import (
	"os"

	"github.com/muesli/termenv"
)

var output = termenv.NewOutput(os.Stdout)

// SetNoColor forces the output profile to plain ASCII when disable is true,
// or restores the detected terminal profile otherwise. The NO_COLOR
// convention (https://no-color.org) is honored regardless of the flag.
func SetNoColor(disable bool) {
	if disable || os.Getenv("NO_COLOR") != "" {
		output = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.Ascii))
		return
	}
	output = termenv.NewOutput(os.Stdout, termenv.WithProfile(termenv.ColorProfile()))
}

// HasDarkBackground reports whether the terminal uses a dark background.
// Used to pick readable prompt colors.
func HasDarkBackground() bool {
	return output.HasDarkBackground()
}

// ColorEnabled reports whether the current profile supports color.
func ColorEnabled() bool {
	return output.Profile != termenv.Ascii
}
