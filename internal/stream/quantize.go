package stream

import (
	"errors"
	"math"

	"bioscope/internal/config"
)

// ErrInvalidSamplingRate is returned for a non-positive requested rate.
// The validation layer pre-filters these, so hitting it indicates a bug
// in the caller.
var ErrInvalidSamplingRate = errors.New("sampling rate must be positive")

// Quantize maps a requested sampling rate to the nearest rate the
// firmware can produce: clock/divider for a positive integer divider,
// with ties in the divider rounded away from zero. Deterministic and
// state-free.
func Quantize(requestedHz float64) (appliedHz float64, err error) {
	if requestedHz <= 0 || math.IsNaN(requestedHz) {
		return 0, ErrInvalidSamplingRate
	}
	divider := math.Round(config.DeviceClockHz / requestedHz)
	if divider < 1 {
		divider = 1
	}
	return config.DeviceClockHz / divider, nil
}

// Divider returns the firmware divider for an applied rate produced by
// Quantize. Used when writing the rate to the hardware.
func Divider(appliedHz float64) uint16 {
	d := math.Round(config.DeviceClockHz / appliedHz)
	if d < 1 {
		d = 1
	}
	if d > math.MaxUint16 {
		d = math.MaxUint16
	}
	return uint16(d)
}
