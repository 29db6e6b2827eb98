package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	curveCol     = lipgloss.Color("#E24A4A") // default curve tint; strokes may override
	hullCol      = lipgloss.Color("#4B5563")
	gridCol      = lipgloss.Color("#374151")
	highlightCol = lipgloss.Color("#FFA500")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	labelStyle = lipgloss.NewStyle().Foreground(baseFg).Bold(true)
)

// markerCols color the control-point x marks, one color per segment,
// cycling in step with the PNG export palette.
var markerCols = []lipgloss.Color{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b",
}
