package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, connected, streaming bool, requestedHz, appliedHz, windowSec float64, fill, capacity int) string {
	conn := StyleStatusPaused.Render("[OFFLINE]")
	if connected {
		if streaming {
			conn = StyleStatusLive.Render("[LIVE]")
		} else {
			conn = StyleStatusLive.Render("[CONNECTED]")
		}
	}

	info := fmt.Sprintf(" Rate: %.4gHz (req %.4g)  Window: %.4gs  Buffer: %d/%d",
		appliedHz, requestedHz, windowSec, fill, capacity)

	content := conn + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}
	padding := ""
	for i := 0; i < gap; i++ {
		padding += " "
	}

	return StyleStatusBar.Width(width).Render(content + padding)
}
