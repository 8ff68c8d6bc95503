package ui

import "github.com/charmbracelet/lipgloss"

// ANSI palette, kept to the basic 16 colours for terminal compatibility.
const (
	ColorTarget  lipgloss.Color = "1" // Red
	ColorSuccess lipgloss.Color = "2" // Green
	ColorValue   lipgloss.Color = "3" // Yellow
	ColorAccent  lipgloss.Color = "5" // Purple
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

type styles struct {
	target   lipgloss.Style
	value    lipgloss.Style
	success  lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	degraded lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		target:   r.NewStyle().Foreground(ColorTarget),
		value:    r.NewStyle().Foreground(ColorValue),
		success:  r.NewStyle().Foreground(ColorSuccess),
		accent:   r.NewStyle().Foreground(ColorAccent),
		muted:    r.NewStyle().Foreground(ColorMuted),
		degraded: r.NewStyle().Foreground(ColorTarget).Bold(true),
	}
}
