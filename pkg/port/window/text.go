package window

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Width returns the display width of s in cells, ignoring escape codes.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Wrap breaks s into lines no wider than width, at spaces where possible.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// Fit shortens s to width cells, marking the cut.
func Fit(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
