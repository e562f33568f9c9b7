package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorAccent   = lipgloss.Color("#00FF41")
	ColorGreen    = lipgloss.Color("#00CC33")
	ColorMidGreen = lipgloss.Color("#008F11")
	ColorDimGreen = lipgloss.Color("#004A0A")
	ColorError    = lipgloss.Color("#FF3300")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorLineX    = lipgloss.Color("#00FFAA")
	ColorLineY    = lipgloss.Color("#FFCC00")
	ColorLineZ    = lipgloss.Color("#FF66CC")
)

// Per-series line styles, indexed by position within the selection.
var SeriesStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(ColorLineX).Bold(true),
	lipgloss.NewStyle().Foreground(ColorLineY).Bold(true),
	lipgloss.NewStyle().Foreground(ColorLineZ).Bold(true),
}

// Pre-built styles
var (
	StyleMenuBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StyleMenuKey = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleMenuLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#002200")).
			Foreground(ColorGreen).
			Padding(0, 1)

	StyleStatusLive = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleStatusPaused = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	StylePanelBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorMidGreen)

	StylePanelActive = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAccent)

	StylePanelTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	StyleAxis = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleAxisLabel = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleGrid = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleFieldLabel = lipgloss.NewStyle().
			Foreground(ColorMidGreen)

	StyleFieldValue = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleFieldFocus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(ColorAccent).
			Bold(true)

	StyleFieldEdit = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Underline(true)

	StyleErrorMsg = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleSelector = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	StyleCheckOn = lipgloss.NewStyle().
			Foreground(ColorGreen)

	StyleCheckOff = lipgloss.NewStyle().
			Foreground(ColorDimGreen)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDimGreen)
)
