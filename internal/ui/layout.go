package ui

import "github.com/charmbracelet/lipgloss"

// ComposeLayout joins the chart panel and settings panel horizontally,
// with menu bar on top and status bar on bottom.
func ComposeLayout(menuBar, chartPanel, controlsPanel, statusBar string, width int) string {
	middle := lipgloss.JoinHorizontal(lipgloss.Top, chartPanel, controlsPanel)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, middle, statusBar)
}
