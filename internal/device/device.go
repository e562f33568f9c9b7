package device

import (
	"context"
	"errors"

	"bioscope/internal/sensor"
)

// FrameHandler receives one decoded frame per tick. It is invoked on a
// goroutine owned by the transport, at the applied sampling rate.
type FrameHandler func(sensor.Frame)

var (
	ErrNotConnected = errors.New("device not connected")
	ErrNotFound     = errors.New("device not found")
)

// Device is the wearable collaborator. Implementations push decoded
// frames to the handler; malformed packets are logged and dropped
// before the handler ever sees them.
type Device interface {
	Connect(ctx context.Context) error
	StartStreaming() error
	StopStreaming() error
	IsConnected() bool

	// SamplingRate reports the rate currently written to the hardware.
	SamplingRate() float64
	// SetSamplingRate writes a quantized rate to the hardware. The
	// caller is responsible for quantizing first; the firmware only
	// understands clock/divider rates.
	SetSamplingRate(hz float64) error

	SetFrameHandler(h FrameHandler)
	Close() error
}
