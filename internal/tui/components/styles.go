package components

import "github.com/charmbracelet/lipgloss"

// Styles holds all shared Lipgloss styles used across TUI screens.
type Styles struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Body          lipgloss.Style
	Muted         lipgloss.Style
	Success       lipgloss.Style
	Error         lipgloss.Style
	Warning       lipgloss.Style
	Label         lipgloss.Style
	StatusDone    string
	StatusRunning string
	StatusPending string
	StatusFailed  string
	Footer        lipgloss.Style
	AccentColor   lipgloss.AdaptiveColor
	ProgressFull  lipgloss.Style
	ProgressEmpty lipgloss.Style
}

// DefaultStyles returns a Styles populated with the mcp11 color palette.
// Uses AdaptiveColor to work in both light and dark terminals.
func DefaultStyles() Styles {
	accent := lipgloss.AdaptiveColor{Light: "#0F766E", Dark: "#2DD4BF"}
	blue := lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"}
	muted := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	success := lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}
	errColor := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	warn := lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(blue),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(muted),

		Success: lipgloss.NewStyle().
			Foreground(success),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(errColor),

		Warning: lipgloss.NewStyle().
			Foreground(warn),

		Label: lipgloss.NewStyle().
			Foreground(blue).
			Width(10),

		StatusDone:    "✓",
		StatusRunning: "●",
		StatusPending: "○",
		StatusFailed:  "✗",

		Footer: lipgloss.NewStyle().
			Foreground(muted),

		AccentColor: accent,

		ProgressFull: lipgloss.NewStyle().
			Foreground(accent),

		ProgressEmpty: lipgloss.NewStyle().
			Foreground(muted),
	}
}
