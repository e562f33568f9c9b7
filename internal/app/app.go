package app

import (
	"context"
	"time"

	"bioscope/internal/config"
	"bioscope/internal/device"
	"bioscope/internal/scope"
	"bioscope/internal/sensor"
	"bioscope/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// fieldSpec maps panel rows to session fields.
type fieldSpec struct {
	field scope.Field
	label string
	unit  string // "" means the selected channel's unit
}

var fieldSpecs = []fieldSpec{
	{scope.FieldYMin, "Y min", ""},
	{scope.FieldYMax, "Y max", ""},
	{scope.FieldTimeWindow, "Window", "s"},
	{scope.FieldLabelInterval, "Labels", ""},
	{scope.FieldSamplingRate, "Rate", "Hz"},
}

// selEntry is one option of the signal selector: a group or a single
// channel.
type selEntry struct {
	label   string
	group   bool
	channel sensor.Channel
}

// shared holds state shared between the Bubble Tea model copies and
// main.go. Because Bubble Tea uses value receivers, pointer fields
// ensure all copies see the same underlying data.
type shared struct {
	session   *scope.Session
	dev       device.Device
	streaming bool
}

// Model is the root Bubble Tea model for bioscope.
type Model struct {
	width  int
	height int

	deviceLabel string
	lastDevErr  string

	shared *shared

	selections []selEntry
	selIdx     int

	focusIdx int
	editing  bool
	editText string
}

// New creates the root model around an existing session and device.
func New(session *scope.Session, dev device.Device, deviceLabel string) Model {
	return Model{
		deviceLabel: deviceLabel,
		shared:      &shared{session: session, dev: dev},
		selections:  buildSelections(session),
	}
}

// buildSelections lists groups whose sensors are enabled, then the
// individual channels.
func buildSelections(session *scope.Session) []selEntry {
	var entries []selEntry
	seen := map[string]bool{}
	channels := session.GetEnabledChannels()
	for _, ch := range channels {
		if g := sensor.GroupOf(ch); g != "" && !seen[g] {
			seen[g] = true
			entries = append(entries, selEntry{label: g, group: true})
		}
	}
	for _, ch := range channels {
		entries = append(entries, selEntry{label: string(ch), channel: ch})
	}
	return entries
}

// Start connects the device and begins streaming. Must be called with
// the running program before the first frame can arrive.
func (m *Model) Start(ctx context.Context) error {
	if err := m.shared.dev.Connect(ctx); err != nil {
		return err
	}
	if err := m.shared.dev.StartStreaming(); err != nil {
		return err
	}
	m.shared.streaming = true

	// initial selection: first group when there is one
	if len(m.selections) > 0 {
		m.applySelection(0)
	}
	return nil
}

// Stop shuts the device down.
func (m *Model) Stop() {
	_ = m.shared.dev.StopStreaming()
	_ = m.shared.dev.Close()
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case RenderTickMsg:
		return m, tickCmd()

	case RefreshMsg:
		// view pulls everything from the session; redraw happens on return
		return m, nil

	case DeviceErrorMsg:
		if msg.Err != nil {
			m.lastDevErr = msg.Err.Error()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.Stop()
		return m, tea.Quit

	case "a", "A":
		m.shared.session.SetAutoRange(!m.shared.session.AutoMode())

	case " ":
		m.toggleStreaming()

	case "c", "C":
		m.shared.session.ClearAll()

	case "up", "shift+tab", "k":
		if m.focusIdx > 0 {
			m.focusIdx--
		}

	case "down", "tab", "j":
		if m.focusIdx < len(fieldSpecs)-1 {
			m.focusIdx++
		}

	case "left", "h":
		m.cycleSelection(-1)

	case "right", "l":
		m.cycleSelection(1)

	case "enter":
		m.editing = true
		m.editText = m.shared.session.FieldText(fieldSpecs[m.focusIdx].field)
	}

	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch s := msg.String(); s {
	case "enter":
		// commit through the validation controller; on failure the
		// session rolls the text back and surfaces the message
		_ = m.shared.session.CommitField(fieldSpecs[m.focusIdx].field, m.editText)
		m.editing = false
		m.editText = ""

	case "esc":
		m.editing = false
		m.editText = ""

	case "backspace":
		if len(m.editText) > 0 {
			m.editText = m.editText[:len(m.editText)-1]
		}

	case "ctrl+c":
		m.Stop()
		return m, tea.Quit

	default:
		if len(s) == 1 && isFieldChar(s[0]) {
			m.editText += s
		}
	}
	return m, nil
}

func isFieldChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.' || c == ',' || c == '+' || c == '-'
}

func (m *Model) toggleStreaming() {
	if m.shared.streaming {
		if err := m.shared.dev.StopStreaming(); err == nil {
			m.shared.streaming = false
		}
		return
	}
	if err := m.shared.dev.StartStreaming(); err == nil {
		m.shared.streaming = true
	} else {
		m.lastDevErr = err.Error()
	}
}

func (m *Model) cycleSelection(dir int) {
	if len(m.selections) == 0 {
		return
	}
	m.selIdx = (m.selIdx + dir + len(m.selections)) % len(m.selections)
	m.applySelection(m.selIdx)
}

func (m *Model) applySelection(idx int) {
	m.selIdx = idx
	entry := m.selections[idx]
	if entry.group {
		m.shared.session.SelectGroup(entry.label)
	} else {
		m.shared.session.SelectChannel(entry.channel)
	}
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing bioscope..."
	}

	session := m.shared.session

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 8 {
		bodyH = 8
	}

	chartW := m.width * 3 / 4
	if chartW < 40 {
		chartW = 40
	}
	panelW := m.width - chartW
	if panelW < 24 {
		panelW = 24
		chartW = m.width - panelW
	}

	menuBar := ui.RenderMenuBar(m.width, m.deviceLabel, m.shared.streaming)

	chartPanel := ui.RenderChart(
		chartW, bodyH,
		m.chartSeries(),
		session.Range(),
		session.Window(),
		session.LabelInterval(),
		m.chartTitle(),
	)

	controlsPanel := ui.RenderControlsPanel(m.controlsState(), panelW, bodyH)

	fill, capacity := session.BufferFill()
	statusBar := ui.RenderStatusBar(m.width,
		m.shared.dev.IsConnected(), m.shared.streaming,
		session.RequestedHz(), session.AppliedHz(),
		session.Window(), fill, capacity)

	return ui.ComposeLayout(menuBar, chartPanel, controlsPanel, statusBar, m.width)
}

func (m Model) selectionChannels() []sensor.Channel {
	ch, group := m.shared.session.Selection()
	if group != "" {
		return m.shared.session.GetGroupMembers(group)
	}
	return []sensor.Channel{ch}
}

func (m Model) chartSeries() []ui.Series {
	var series []ui.Series
	for _, ch := range m.selectionChannels() {
		vals, ts := m.shared.session.Snapshot(ch)
		series = append(series, ui.Series{
			Name:       shortName(ch),
			Values:     vals,
			Timestamps: ts,
		})
	}
	return series
}

func (m Model) chartTitle() string {
	ch, group := m.shared.session.Selection()
	name := string(ch)
	if group != "" {
		name = group
	}
	mode := "auto"
	if !m.shared.session.AutoMode() {
		mode = "manual"
	}
	return name + " [" + sensor.Unit(ch) + "] " + mode
}

func (m Model) controlsState() ui.ControlsState {
	session := m.shared.session
	ch, group := session.Selection()
	selLabel := string(ch)
	if group != "" {
		selLabel = group
	}

	fields := make([]ui.FieldRow, len(fieldSpecs))
	for i, spec := range fieldSpecs {
		row := ui.FieldRow{
			Label:   spec.label,
			Text:    session.FieldText(spec.field),
			Unit:    spec.unit,
			Focused: i == m.focusIdx && !m.editing,
			Editing: i == m.focusIdx && m.editing,
		}
		if row.Unit == "" && (spec.field == scope.FieldYMin || spec.field == scope.FieldYMax) {
			row.Unit = sensor.Unit(ch)
		}
		if row.Editing {
			row.Text = m.editText
		}
		fields[i] = row
	}

	msg := session.Message()
	if msg == "" {
		msg = m.lastDevErr
	}

	return ui.ControlsState{
		Selection:     selLabel,
		SelectionUnit: sensor.Unit(ch),
		AutoRange:     session.AutoMode(),
		Fields:        fields,
		Message:       msg,
		Editing:       m.editing,
	}
}

// shortName trims the group prefix for legend entries: GyroscopeX -> X.
func shortName(ch sensor.Channel) string {
	if g := sensor.GroupOf(ch); g != "" {
		return string(ch[len(g):])
	}
	return string(ch)
}

func tickCmd() tea.Cmd {
	return tea.Tick(config.RenderInterval, func(t time.Time) tea.Msg {
		return RenderTickMsg(t)
	})
}
