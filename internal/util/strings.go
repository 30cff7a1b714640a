// Package util provides shared utility functions used across the codebase.
package util

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens a string to maxLen runes, appending "..." when it had
// to cut. It counts runes, not bytes, so multi-byte labels truncate
// cleanly; it does not account for ANSI escape codes. For styled terminal
// output use TruncateANSI.
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// TruncateANSI shortens a string to maxWidth visual columns, appending
// "..." when it had to cut. Escape sequences and wide characters are
// measured correctly, so styled text keeps its styling.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "...")
}
