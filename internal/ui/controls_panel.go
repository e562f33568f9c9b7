package ui

import (
	"fmt"
	"strings"
)

// FieldRow is one editable setting as the panel shows it.
type FieldRow struct {
	Label   string
	Text    string
	Unit    string
	Focused bool
	Editing bool
}

// ControlsState is everything the right-hand panel renders.
type ControlsState struct {
	Selection     string // current channel or group name
	SelectionUnit string
	AutoRange     bool
	Fields        []FieldRow
	Message       string // validation error, empty when none
	Editing       bool
}

// RenderControlsPanel renders the settings panel: signal selector,
// auto-range toggle, the editable fields and the validation message.
func RenderControlsPanel(state ControlsState, width, height int) string {
	innerW := width - 4
	if innerW < 16 {
		innerW = 16
	}
	innerH := height - 2

	title := StylePanelTitle.Render("SETTINGS")
	sep := StyleAxis.Render(strings.Repeat("-", innerW))

	lines := []string{title, sep, ""}

	sel := fmt.Sprintf("< %s >", state.Selection)
	lines = append(lines,
		StyleFieldLabel.Render("  Signal"),
		"  "+StyleSelector.Render(sel)+" "+StyleFieldLabel.Render(state.SelectionUnit),
		"")

	check := StyleCheckOff.Render("[ ]")
	if state.AutoRange {
		check = StyleCheckOn.Render("[x]")
	}
	lines = append(lines, "  "+check+" "+StyleFieldValue.Render("Auto range")+StyleHelp.Render("  (a)"), "")

	for _, f := range state.Fields {
		lines = append(lines, renderFieldRow(f, innerW))
	}

	lines = append(lines, "")
	if state.Message != "" {
		lines = append(lines, wrapMessage(state.Message, innerW, "  ")...)
	}

	// help footer pinned to the bottom
	help := []string{
		StyleHelp.Render("  tab/updown  field"),
		StyleHelp.Render("  enter       edit/commit"),
		StyleHelp.Render("  left/right  signal"),
		StyleHelp.Render("  space       pause"),
		StyleHelp.Render("  q           quit"),
	}
	for len(lines) < innerH-len(help) {
		lines = append(lines, "")
	}
	lines = append(lines, help...)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	content := strings.Join(lines, "\n")
	sty := StylePanelBorder
	if state.Editing {
		sty = StylePanelActive
	}
	return clampHeight(sty.Width(width-2).Height(innerH).Render(content), height)
}

func renderFieldRow(f FieldRow, innerW int) string {
	label := StyleFieldLabel.Render(fmt.Sprintf("  %-9s", f.Label))

	text := f.Text
	switch {
	case f.Editing:
		return label + StyleFieldEdit.Render(text+"_") + " " + StyleFieldLabel.Render(f.Unit)
	case f.Focused:
		return label + StyleFieldFocus.Render(" "+text+" ") + " " + StyleFieldLabel.Render(f.Unit)
	default:
		return label + StyleFieldValue.Render(text) + " " + StyleFieldLabel.Render(f.Unit)
	}
}

func wrapMessage(msg string, innerW int, indent string) []string {
	avail := innerW - len(indent)
	if avail < 8 {
		avail = 8
	}
	var lines []string
	for len(msg) > avail {
		lines = append(lines, StyleErrorMsg.Render(indent+msg[:avail]))
		msg = msg[avail:]
	}
	lines = append(lines, StyleErrorMsg.Render(indent+msg))
	return lines
}

// clampHeight pads or truncates rendered panel output to exactly h
// lines; lipgloss Height() only enforces a minimum.
func clampHeight(rendered string, h int) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
