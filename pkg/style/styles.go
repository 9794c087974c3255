// Package style defines the lipgloss styles and the lightweight markup
// renderer used for user-facing output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	HeadingColor = lipgloss.AdaptiveColor{Light: "#1a1a8c", Dark: "#7aa2f7"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#9ece6a"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#cf222e", Dark: "#f7768e"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#e0af68"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#565f89"}
	PathColor    = lipgloss.AdaptiveColor{Light: "#0550ae", Dark: "#7dcfff"}
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor)

	CodeStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Bold applies bold styling to text.
func Bold(text string) string {
	return lipgloss.NewStyle().Bold(true).Render(text)
}

// Indent indents text by the given number of two-space levels.
func Indent(text string, levels int) string {
	return lipgloss.NewStyle().PaddingLeft(levels * 2).Render(text)
}
