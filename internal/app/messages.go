package app

import "time"

// RenderTickMsg drives the ~1 Hz fallback redraw.
type RenderTickMsg time.Time

// RefreshMsg is the session's refresh signal: some state changed and
// the chart should redraw.
type RefreshMsg struct{}

// DeviceErrorMsg reports device failures outside the rate-change
// bracket.
type DeviceErrorMsg struct {
	Err error
}
