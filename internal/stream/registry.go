package stream

import (
	"math"
	"sync"

	"bioscope/internal/sensor"
)

// Registry owns one bounded series buffer per enabled channel. It is
// the producer/consumer meeting point: the device callback goroutine
// appends, the render path snapshots, and reconfiguration (window and
// rate changes) runs on whatever goroutine the UI dispatches on. One
// coarse mutex guards the whole registry; the Snapshot critical
// section is just a copy so the producer is not starved.
//
// Buffer capacity is ceil(windowSec * appliedHz). Timestamps come from
// a monotonic sample counter, not wall clock, so every channel of one
// tick carries the identical timestamp regardless of scheduling
// jitter.
type Registry struct {
	mu        sync.Mutex
	buffers   map[sensor.Channel]*seriesRing
	order     []sensor.Channel // fixed display order
	windowSec float64
	appliedHz float64
	counter   uint64 // ticks since the last rate change
}

// NewRegistry creates buffers for exactly the given channels. The set
// never grows or shrinks afterward.
func NewRegistry(channels []sensor.Channel, windowSec, appliedHz float64) *Registry {
	r := &Registry{
		buffers:   make(map[sensor.Channel]*seriesRing, len(channels)),
		order:     make([]sensor.Channel, len(channels)),
		windowSec: windowSec,
		appliedHz: appliedHz,
	}
	copy(r.order, channels)
	cap := capacityFor(windowSec, appliedHz)
	for _, ch := range channels {
		r.buffers[ch] = newSeriesRing(cap)
	}
	return r
}

func capacityFor(windowSec, appliedHz float64) int {
	c := int(math.Ceil(windowSec * appliedHz))
	if c < 1 {
		c = 1
	}
	return c
}

// AppendTick appends one decoded frame. All channels of the tick get
// the same timestamp, derived from the sample counter and the applied
// rate. Values for channels without a buffer (disabled sensors) are
// silently dropped. Returns the tick timestamp in milliseconds.
func (r *Registry) AppendTick(values map[sensor.Channel]float32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := int32(math.Round(float64(r.counter) / r.appliedHz * 1000))
	r.counter++

	for ch, v := range values {
		buf, ok := r.buffers[ch]
		if !ok {
			continue
		}
		buf.push(v, ts)
	}
	return ts
}

// Snapshot returns an independent copy of one channel's buffer in
// chronological order. A channel without a buffer yields two empty
// slices, not an error. Safe to call while AppendTick is in progress.
func (r *Registry) Snapshot(ch sensor.Channel) ([]float32, []int32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	buf, ok := r.buffers[ch]
	if !ok {
		return []float32{}, []int32{}
	}
	return buf.snapshot()
}

// ClearAll empties every buffer in place and resets the sample
// counter. The registry structure itself is untouched.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, buf := range r.buffers {
		buf.clear()
	}
	r.counter = 0
}

// SetWindow changes the retained time span and re-trims every buffer
// to the new capacity. Existing data and the sample counter survive;
// only eviction happens.
func (r *Registry) SetWindow(windowSec float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.windowSec = windowSec
	cap := capacityFor(windowSec, r.appliedHz)
	for _, buf := range r.buffers {
		buf.resize(cap)
	}
}

// SetRate is the hard reset: timestamps computed under the old rate
// are meaningless under the new one, so every buffer and the counter
// are cleared before the capacity is recomputed.
func (r *Registry) SetRate(appliedHz float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appliedHz = appliedHz
	cap := capacityFor(r.windowSec, appliedHz)
	for _, buf := range r.buffers {
		buf.clear()
		buf.resize(cap)
	}
	r.counter = 0
}

// MinMax returns the extrema over the union of the given channels'
// buffers. ok is false when every buffer is empty (or no channel
// matches), in which case callers fall back to static bounds.
func (r *Registry) MinMax(channels ...sensor.Channel) (min, max float64, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range channels {
		if buf, found := r.buffers[ch]; found {
			min, max, ok = buf.minMax(min, max, ok)
		}
	}
	return min, max, ok
}

// Channels returns the registered channels in display order.
func (r *Registry) Channels() []sensor.Channel {
	out := make([]sensor.Channel, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the current number of buffered pairs for a channel.
func (r *Registry) Len(ch sensor.Channel) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if buf, ok := r.buffers[ch]; ok {
		return buf.len()
	}
	return 0
}

// Capacity returns the current per-channel capacity.
func (r *Registry) Capacity() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return capacityFor(r.windowSec, r.appliedHz)
}

// Window returns the retained time span in seconds.
func (r *Registry) Window() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.windowSec
}

// AppliedHz returns the quantized rate the timestamps are defined in.
func (r *Registry) AppliedHz() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appliedHz
}
