package ui

import (
	"fmt"

	"bioscope/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// RenderMenuBar renders the top menu bar.
func RenderMenuBar(width int, deviceLabel string, streaming bool) string {
	title := fmt.Sprintf(" %s v%s ", config.AppName, config.AppVersion)

	keys := []struct{ key, label string }{
		{"A", "uto"},
		{"Space", " pause"},
		{"C", "lear"},
		{"Q", "uit"},
	}

	menu := ""
	for _, k := range keys {
		menu += "  " + StyleMenuKey.Render("["+k.key+"]") + StyleMenuLabel.Render(k.label)
	}

	status := ""
	if streaming {
		status = StyleStatusLive.Render("STREAMING")
	} else {
		status = StyleStatusPaused.Render("PAUSED")
	}

	deviceInfo := StyleMenuLabel.Render(fmt.Sprintf("Device: %s", deviceLabel))

	left := StyleMenuKey.Render(title) + menu
	right := status + "  " + deviceInfo + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleMenuBar.Width(width).Render(left + padding + right)
}
