// Package tui renders the interactive client using the box-drawing,
// centering, and lipgloss conventions carried over from the server's
// original terminal client.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	BoxTopLeft     = "┏"
	BoxTopRight    = "┓"
	BoxBottomLeft  = "┗"
	BoxBottomRight = "┛"
	BoxHorizontal  = "━"
	BoxVertical    = "┃"
	BoxCross       = "┫"
	BoxCrossLeft   = "┣"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// Center centers s within width, padding the extra space onto the
// right when it can't be split evenly.
func Center(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// PadRight pads or truncates s to exactly width runes.
func PadRight(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
