package scope

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"bioscope/internal/config"
	"bioscope/internal/device"
	"bioscope/internal/sensor"
	"bioscope/internal/stream"
)

// Session is the core the UI and the device talk to: it owns the
// stream registry, the axis state and the editable fields, and routes
// every numeric setting through validation with rollback. The device
// callback goroutine calls HandleFrame; the UI goroutine calls
// everything else. Session state is guarded by its own mutex, buffer
// state by the registry's.
type Session struct {
	mu     sync.Mutex
	reg    *stream.Registry
	dev    device.Device // nil when no hardware collaborator is attached
	log    *slog.Logger
	notify func() // refresh signal; fired outside the lock

	fields   map[Field]*EditableField
	message  string // current validation error, empty when none
	defaults config.DefaultsConfig

	requestedHz float64
	appliedHz   float64

	autoMode bool
	manual   stream.AxisRange
	auto     stream.AxisRange

	selChannel sensor.Channel
	selGroup   string // non-empty selects group mode
}

// NewSession builds the registry for the enabled sensors and seeds
// every editable field with its default. notify may be nil.
func NewSession(cfg *config.File, dev device.Device, log *slog.Logger, notify func()) (*Session, error) {
	channels := sensor.EnabledChannels(cfg.Sensors)
	if len(channels) == 0 {
		return nil, fmt.Errorf("no sensors enabled")
	}

	applied, err := stream.Quantize(cfg.Defaults.SamplingRateHz)
	if err != nil {
		return nil, fmt.Errorf("default sampling rate: %w", err)
	}

	if notify == nil {
		notify = func() {}
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Session{
		reg:         stream.NewRegistry(channels, cfg.Defaults.TimeWindowSeconds, applied),
		dev:         dev,
		log:         log,
		notify:      notify,
		defaults:    cfg.Defaults,
		requestedHz: cfg.Defaults.SamplingRateHz,
		appliedHz:   applied,
		autoMode:    true,
		selChannel:  channels[0],
	}

	fmin, fmax := s.selectionFallback()
	s.manual = stream.AxisRange{Min: fmin, Max: fmax}
	s.auto = s.manual
	s.fields = map[Field]*EditableField{
		FieldYMin:          newField(fmin),
		FieldYMax:          newField(fmax),
		FieldTimeWindow:    newField(cfg.Defaults.TimeWindowSeconds),
		FieldLabelInterval: newField(float64(cfg.Defaults.LabelInterval)),
		FieldSamplingRate:  newField(cfg.Defaults.SamplingRateHz),
	}

	if dev != nil {
		dev.SetFrameHandler(s.HandleFrame)
	}
	return s, nil
}

// HandleFrame is the producer entry point, called once per tick on the
// transport goroutine. A frame missing any enabled channel is dropped
// whole so no tick ever applies partially.
func (s *Session) HandleFrame(f sensor.Frame) {
	s.mu.Lock()
	for _, ch := range s.reg.Channels() {
		if _, ok := f.Values[ch]; !ok {
			s.mu.Unlock()
			s.log.Debug("dropping incomplete frame", "seq", f.Seq, "missing", string(ch))
			return
		}
	}
	s.reg.AppendTick(f.Values)
	if s.autoMode {
		s.recomputeAuto()
	}
	s.mu.Unlock()

	s.notify()
}

// Snapshot returns a copy of one channel's buffered series.
func (s *Session) Snapshot(ch sensor.Channel) ([]float32, []int32) {
	return s.reg.Snapshot(ch)
}

// ClearAll empties every buffer without touching configuration.
func (s *Session) ClearAll() {
	s.reg.ClearAll()
	s.notify()
}

// CommitField handles one text-commit event from the UI per the
// validation contract: empty reverts to the static default, a bare
// sign is in-progress typing, anything else is parsed, constrained,
// and either committed or rolled back.
func (s *Session) CommitField(f Field, text string) error {
	s.mu.Lock()
	field := s.fields[f]

	if text == "" {
		def := s.defaultFor(f)
		s.message = ""
		err := s.applyLocked(f, def)
		field.set(def)
		s.mu.Unlock()
		s.notify()
		return err
	}

	if signOnly(text) {
		field.Text = text
		s.mu.Unlock()
		return nil
	}

	v, err := parseNumber(text)
	if err == nil {
		err = s.constraintFor(f, v)
	}
	if err != nil {
		s.message = fmt.Sprintf("%s: %v", f, err)
		field.revert()
		s.mu.Unlock()
		s.notify()
		return err
	}

	s.message = ""
	err = s.applyLocked(f, v)
	field.Text = text
	field.Value = v
	s.mu.Unlock()
	s.notify()
	return err
}

// SetTimeWindow, SetLabelInterval, SetYAxis, SetSamplingRate and
// SetAutoRange are the synchronous configuration surface; all but
// SetAutoRange go through the same constraints as CommitField.

func (s *Session) SetTimeWindow(seconds float64) error {
	return s.commitValue(FieldTimeWindow, seconds)
}

func (s *Session) SetLabelInterval(n int) error {
	return s.commitValue(FieldLabelInterval, float64(n))
}

func (s *Session) SetSamplingRate(hz float64) error {
	return s.commitValue(FieldSamplingRate, hz)
}

func (s *Session) SetYAxis(min, max float64) error {
	s.mu.Lock()
	if min >= max {
		s.message = fmt.Sprintf("Y min %v must be below Y max %v", min, max)
		s.mu.Unlock()
		s.notify()
		return fmt.Errorf("y axis: min %v >= max %v", min, max)
	}
	s.manual = stream.AxisRange{Min: min, Max: max}
	s.fields[FieldYMin].set(min)
	s.fields[FieldYMax].set(max)
	s.message = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Session) SetAutoRange(on bool) {
	s.mu.Lock()
	s.autoMode = on
	if on {
		s.recomputeAuto()
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) commitValue(f Field, v float64) error {
	s.mu.Lock()
	if err := s.constraintFor(f, v); err != nil {
		s.message = fmt.Sprintf("%s: %v", f, err)
		s.fields[f].revert()
		s.mu.Unlock()
		s.notify()
		return err
	}
	s.message = ""
	err := s.applyLocked(f, v)
	s.fields[f].set(v)
	s.mu.Unlock()
	s.notify()
	return err
}

// constraintFor enforces the per-field rules on an already-parsed
// value.
func (s *Session) constraintFor(f Field, v float64) error {
	switch f {
	case FieldYMin:
		if v >= s.fields[FieldYMax].Value {
			return fmt.Errorf("must be below Y max (%s)", s.fields[FieldYMax].Text)
		}
	case FieldYMax:
		if v <= s.fields[FieldYMin].Value {
			return fmt.Errorf("must be above Y min (%s)", s.fields[FieldYMin].Text)
		}
	case FieldTimeWindow:
		if v < config.TimeWindowMinSec || v > config.TimeWindowMaxSec {
			return fmt.Errorf("must be %g-%g s", config.TimeWindowMinSec, config.TimeWindowMaxSec)
		}
	case FieldLabelInterval:
		if v != math.Trunc(v) {
			return fmt.Errorf("must be a whole number")
		}
		if v < config.LabelIntervalMin || v > config.LabelIntervalMax {
			return fmt.Errorf("must be %d-%d", config.LabelIntervalMin, config.LabelIntervalMax)
		}
	case FieldSamplingRate:
		if v < config.SamplingRateMinHz || v > config.SamplingRateMaxHz {
			return fmt.Errorf("must be %g-%g Hz", config.SamplingRateMinHz, config.SamplingRateMaxHz)
		}
	}
	return nil
}

// applyLocked propagates a committed value to the dependent state.
// Callers hold s.mu and fire the refresh signal afterwards.
func (s *Session) applyLocked(f Field, v float64) error {
	switch f {
	case FieldYMin:
		s.manual.Min = v
	case FieldYMax:
		s.manual.Max = v
	case FieldTimeWindow:
		s.reg.SetWindow(v)
		if s.autoMode {
			s.recomputeAuto()
		}
	case FieldLabelInterval:
		// value only; consumed by the chart at render time
	case FieldSamplingRate:
		return s.applyRateLocked(v)
	}
	return nil
}

// applyRateLocked quantizes the requested rate, pushes it to the
// hardware inside a best-effort stop/start bracket, and hard-resets
// the registry: timestamps under the old rate are not comparable to
// ones under the new.
func (s *Session) applyRateLocked(requestedHz float64) error {
	applied, err := stream.Quantize(requestedHz)
	if err != nil {
		// validation pre-filters non-positive rates; reaching this is
		// a caller bug and must surface
		return err
	}

	if s.dev != nil && s.dev.IsConnected() {
		// the device may already be stopped; failures are swallowed
		if err := s.dev.StopStreaming(); err != nil {
			s.log.Debug("stop before rate change", "err", err)
		}
		if err := s.dev.SetSamplingRate(applied); err != nil {
			s.log.Warn("write sampling rate", "hz", applied, "err", err)
		}
		if err := s.dev.StartStreaming(); err != nil {
			s.log.Debug("restart after rate change", "err", err)
		}
	}

	s.requestedHz = requestedHz
	s.appliedHz = applied
	s.reg.SetRate(applied)
	if s.autoMode {
		s.recomputeAuto()
	}
	return nil
}

// recomputeAuto re-derives the auto axis bounds for the current
// selection. Callers hold s.mu.
func (s *Session) recomputeAuto() {
	chs := s.selectionChannels()
	min, max, ok := s.reg.MinMax(chs...)

	var candidate stream.AxisRange
	if !ok {
		fmin, fmax := s.selectionFallback()
		candidate = stream.AxisRange{Min: fmin, Max: fmax}
	} else {
		candidate = stream.ComputeRange(min, max)
	}

	if candidate.DiffersFrom(s.auto) {
		s.auto = candidate
	}
}

// SelectChannel switches to single-channel display. Unknown channels
// are ignored.
func (s *Session) SelectChannel(ch sensor.Channel) {
	s.mu.Lock()
	found := false
	for _, c := range s.reg.Channels() {
		if c == ch {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.selChannel = ch
	s.selGroup = ""
	if s.autoMode {
		s.recomputeAuto()
	}
	s.mu.Unlock()
	s.notify()
}

// SelectGroup switches to multi-line group display. Unknown groups are
// ignored.
func (s *Session) SelectGroup(group string) {
	members := sensor.GroupMembers(group)
	if len(members) == 0 {
		return
	}
	s.mu.Lock()
	s.selGroup = group
	s.selChannel = members[0]
	if s.autoMode {
		s.recomputeAuto()
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Session) selectionChannels() []sensor.Channel {
	if s.selGroup != "" {
		return sensor.GroupMembers(s.selGroup)
	}
	return []sensor.Channel{s.selChannel}
}

// selectionFallback unions the static bounds over the selection.
func (s *Session) selectionFallback() (float64, float64) {
	chs := s.selectionChannels()
	fmin, fmax := sensor.FallbackRange(chs[0])
	for _, ch := range chs[1:] {
		lo, hi := sensor.FallbackRange(ch)
		if lo < fmin {
			fmin = lo
		}
		if hi > fmax {
			fmax = hi
		}
	}
	return fmin, fmax
}

// defaultFor returns the static default an empty commit reverts to.
func (s *Session) defaultFor(f Field) float64 {
	switch f {
	case FieldYMin:
		lo, _ := s.selectionFallback()
		return lo
	case FieldYMax:
		_, hi := s.selectionFallback()
		return hi
	case FieldTimeWindow:
		return s.defaults.TimeWindowSeconds
	case FieldLabelInterval:
		return float64(s.defaults.LabelInterval)
	case FieldSamplingRate:
		return s.defaults.SamplingRateHz
	}
	return 0
}

// Range returns the authoritative axis bounds: the auto-computed pair
// in auto mode, the manually committed pair otherwise.
func (s *Session) Range() stream.AxisRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.autoMode {
		return s.auto
	}
	return s.manual
}

func (s *Session) AutoMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoMode
}

// FieldText returns the text a field currently displays.
func (s *Session) FieldText(f Field) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[f].Text
}

// FieldValue returns a field's last committed value.
func (s *Session) FieldValue(f Field) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[f].Value
}

// Message returns the current validation error, or "".
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Selection returns the selected channel (or group lead) and whether
// group mode is active.
func (s *Session) Selection() (sensor.Channel, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selChannel, s.selGroup
}

// GetEnabledChannels returns the channels that have buffers.
func (s *Session) GetEnabledChannels() []sensor.Channel {
	return s.reg.Channels()
}

// GetGroupMembers exposes the static group table for UI enumeration.
func (s *Session) GetGroupMembers(group string) []sensor.Channel {
	return sensor.GroupMembers(group)
}

func (s *Session) AppliedHz() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appliedHz
}

func (s *Session) RequestedHz() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestedHz
}

func (s *Session) Window() float64 {
	return s.reg.Window()
}

func (s *Session) LabelInterval() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int(s.fields[FieldLabelInterval].Value)
}

// BufferFill reports length and capacity of the selected channel's
// buffer, for the status bar.
func (s *Session) BufferFill() (int, int) {
	s.mu.Lock()
	ch := s.selChannel
	s.mu.Unlock()
	return s.reg.Len(ch), s.reg.Capacity()
}
