package ui

import (
	"fmt"
	"math"
	"strings"

	"bioscope/internal/stream"
	"github.com/charmbracelet/lipgloss"
)

// Series is one channel's snapshot to plot.
type Series struct {
	Name       string
	Values     []float32
	Timestamps []int32
}

// series plot symbols, indexed like SeriesStyles
var seriesSymbols = []byte{'*', '+', 'o'}

// RenderChart renders the scrolling chart panel: newest data pinned to
// the right edge, Y grid labels every (height / labelInterval) rows,
// time labels along the bottom.
func RenderChart(width, height int, series []Series, rng stream.AxisRange, windowSec float64, labelInterval int, title string) string {
	innerW := width - 4
	innerH := height - 2
	if innerW < 20 {
		innerW = 20
	}
	if innerH < 8 {
		innerH = 8
	}

	const yLabelW = 9
	plotW := innerW - yLabelW - 1
	plotH := innerH - 3 // title line, time-label line, X axis line
	if plotW < 10 {
		plotW = 10
	}
	if plotH < 4 {
		plotH = 4
	}

	// symbol grid + owning series index (-1 empty, -2 grid line)
	grid := make([][]byte, plotH)
	owner := make([][]int, plotH)
	for r := range grid {
		grid[r] = make([]byte, plotW)
		owner[r] = make([]int, plotW)
		for c := range grid[r] {
			grid[r][c] = ' '
			owner[r][c] = -1
		}
	}

	labelRows := labelRowSet(plotH, labelInterval)
	for r := range labelRows {
		for c := 0; c < plotW; c++ {
			grid[r][c] = '.'
			owner[r][c] = -2
		}
	}

	span := rng.Max - rng.Min
	if span <= 0 {
		span = 1
	}
	windowMs := windowSec * 1000

	// latest timestamp across all series anchors the right edge
	var latest int32
	for _, s := range series {
		if n := len(s.Timestamps); n > 0 && s.Timestamps[n-1] > latest {
			latest = s.Timestamps[n-1]
		}
	}

	for si, s := range series {
		sym := seriesSymbols[si%len(seriesSymbols)]
		for i, v := range s.Values {
			age := float64(latest - s.Timestamps[i])
			col := plotW - 1 - int(math.Round(age/windowMs*float64(plotW-1)))
			if col < 0 || col >= plotW {
				continue
			}
			frac := (float64(v) - rng.Min) / span
			row := plotH - 1 - int(math.Round(frac*float64(plotH-1)))
			if row < 0 || row >= plotH {
				continue
			}
			grid[row][col] = sym
			owner[row][col] = si
		}
	}

	var sb strings.Builder
	sb.WriteString(StylePanelTitle.Render(title))
	sb.WriteString(renderLegend(series, innerW-lipgloss.Width(StylePanelTitle.Render(title))))
	sb.WriteByte('\n')

	for r := 0; r < plotH; r++ {
		label := strings.Repeat(" ", yLabelW)
		if _, ok := labelRows[r]; ok {
			frac := float64(plotH-1-r) / float64(plotH-1)
			label = fmt.Sprintf("%*s", yLabelW, formatAxisValue(rng.Min+frac*span))
		}
		sb.WriteString(StyleAxisLabel.Render(label))
		sb.WriteString(StyleAxis.Render("|"))
		sb.WriteString(renderGridRow(grid[r], owner[r]))
		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Repeat(" ", yLabelW))
	sb.WriteString(StyleAxis.Render("+" + strings.Repeat("-", plotW)))
	sb.WriteByte('\n')
	sb.WriteString(renderTimeLabels(yLabelW, plotW, windowSec))

	return clampHeight(StylePanelBorder.Width(width-2).Height(innerH).Render(sb.String()), height)
}

// labelRowSet spreads labelInterval+1 grid rows evenly over the plot.
func labelRowSet(plotH, labelInterval int) map[int]struct{} {
	rows := make(map[int]struct{})
	if labelInterval < 1 {
		labelInterval = 1
	}
	for i := 0; i <= labelInterval; i++ {
		rows[i*(plotH-1)/labelInterval] = struct{}{}
	}
	return rows
}

func renderGridRow(symbols []byte, owner []int) string {
	var sb strings.Builder
	run := func(start, end int, sty lipgloss.Style) {
		if end > start {
			sb.WriteString(sty.Render(string(symbols[start:end])))
		}
	}
	start := 0
	for c := 1; c <= len(symbols); c++ {
		if c < len(symbols) && owner[c] == owner[start] {
			continue
		}
		run(start, c, styleForOwner(owner[start]))
		start = c
	}
	return sb.String()
}

func styleForOwner(o int) lipgloss.Style {
	switch {
	case o >= 0:
		return SeriesStyles[o%len(SeriesStyles)]
	case o == -2:
		return StyleGrid
	default:
		return StyleHelp
	}
}

func renderTimeLabels(yLabelW, plotW int, windowSec float64) string {
	left := fmt.Sprintf("-%.0fs", windowSec)
	right := "now"
	gap := plotW - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return strings.Repeat(" ", yLabelW+1) +
		StyleAxisLabel.Render(left) +
		strings.Repeat(" ", gap) +
		StyleAxisLabel.Render(right)
}

func renderLegend(series []Series, avail int) string {
	if len(series) < 2 {
		return ""
	}
	var parts []string
	for i, s := range series {
		sym := string(seriesSymbols[i%len(seriesSymbols)])
		parts = append(parts, SeriesStyles[i%len(SeriesStyles)].Render(sym+" "+s.Name))
	}
	legend := "  " + strings.Join(parts, "  ")
	if lipgloss.Width(legend) > avail {
		return ""
	}
	return legend
}

// formatAxisValue keeps axis labels short across magnitudes.
func formatAxisValue(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
