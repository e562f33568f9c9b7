package config

import "time"

const (
	// Device firmware
	DeviceClockHz = 32768.0 // base oscillator frequency; achievable rates are clock/divider

	// Sampling rate field bounds (Hz)
	SamplingRateMinHz = 1.0
	SamplingRateMaxHz = 1000.0
	DefaultSamplingHz = 51.2 // divider 640, exact

	// Time window field bounds (seconds of retained history)
	TimeWindowMinSec = 1.0
	TimeWindowMaxSec = 600.0
	DefaultWindowSec = 10.0

	// Y-axis label interval bounds (number of horizontal grid labels)
	LabelIntervalMin     = 1
	LabelIntervalMax     = 50
	DefaultLabelInterval = 5

	// Auto-ranging
	RangeMarginFrac  = 0.1   // padding added on each side of the data span
	FlatSignalEps    = 0.001 // span below this is treated as a flat signal
	RangeHysteresis  = 0.01  // minimum bound movement before the axis updates
	RangeRoundDigits = 3

	// Rendering
	RenderInterval = time.Second // fallback redraw cadence when no refresh signal arrives

	// App
	AppName    = "BIOSCOPE"
	AppVersion = "1.0"
)
