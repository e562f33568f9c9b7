package scope

import (
	"context"
	"errors"
	"testing"

	"bioscope/internal/config"
	"bioscope/internal/device"
	"bioscope/internal/sensor"
)

// fakeDevice records the calls the session makes around a rate change.
type fakeDevice struct {
	connected bool
	hz        float64
	calls     []string
	stopErr   error
	handler   device.FrameHandler
}

func (d *fakeDevice) Connect(ctx context.Context) error { d.connected = true; return nil }
func (d *fakeDevice) IsConnected() bool                 { return d.connected }
func (d *fakeDevice) StartStreaming() error             { d.calls = append(d.calls, "start"); return nil }
func (d *fakeDevice) StopStreaming() error {
	d.calls = append(d.calls, "stop")
	return d.stopErr
}
func (d *fakeDevice) SamplingRate() float64 { return d.hz }
func (d *fakeDevice) SetSamplingRate(hz float64) error {
	d.calls = append(d.calls, "rate")
	d.hz = hz
	return nil
}
func (d *fakeDevice) SetFrameHandler(h device.FrameHandler) { d.handler = h }
func (d *fakeDevice) Close() error                          { return nil }

func newTestSession(t *testing.T, dev device.Device) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Sensors = config.SensorConfig{Gyroscope: true}
	s, err := NewSession(cfg, dev, nil, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func gyroFrame(seq uint16, x, y, z float32) sensor.Frame {
	return sensor.Frame{Seq: seq, Values: map[sensor.Channel]float32{
		sensor.GyroscopeX: x,
		sensor.GyroscopeY: y,
		sensor.GyroscopeZ: z,
	}}
}

func TestCommitField_InvalidTextRollsBack(t *testing.T) {
	s := newTestSession(t, nil)
	s.SetAutoRange(false)
	before := s.Range()

	if err := s.CommitField(FieldYMin, "not-a-number"); err == nil {
		t.Fatal("expected parse error")
	}
	if got := s.Range(); got != before {
		t.Fatalf("committed range changed on invalid input: %v -> %v", before, got)
	}
	if got := s.FieldText(FieldYMin); got != "-250" {
		t.Fatalf("field text should revert to last valid, got %q", got)
	}
	if s.Message() == "" {
		t.Fatal("expected a validation message")
	}
}

func TestCommitField_EmptyRevertsToDefaultNotPrevious(t *testing.T) {
	s := newTestSession(t, nil)
	if err := s.CommitField(FieldTimeWindow, "42"); err != nil {
		t.Fatalf("commit 42: %v", err)
	}
	if err := s.CommitField(FieldTimeWindow, ""); err != nil {
		t.Fatalf("commit empty: %v", err)
	}
	if got := s.FieldValue(FieldTimeWindow); got != config.DefaultWindowSec {
		t.Fatalf("empty input must restore the default %v, got %v", config.DefaultWindowSec, got)
	}
	if s.Message() != "" {
		t.Fatalf("empty input must clear the error, got %q", s.Message())
	}
}

func TestCommitField_BareSignIsInProgress(t *testing.T) {
	s := newTestSession(t, nil)
	before := s.FieldValue(FieldYMin)
	if err := s.CommitField(FieldYMin, "-"); err != nil {
		t.Fatalf("bare sign must not error: %v", err)
	}
	if got := s.FieldValue(FieldYMin); got != before {
		t.Fatalf("bare sign must not mutate state: %v -> %v", before, got)
	}
	if got := s.FieldText(FieldYMin); got != "-" {
		t.Fatalf("typed sign should stay visible, got %q", got)
	}
	if s.Message() != "" {
		t.Fatal("bare sign must not surface an error")
	}
}

func TestCommitField_YMinMustStayBelowYMax(t *testing.T) {
	s := newTestSession(t, nil)
	if err := s.CommitField(FieldYMin, "300"); err == nil {
		t.Fatal("expected constraint violation: 300 >= Y max 250")
	}
	if got := s.FieldValue(FieldYMin); got != -250 {
		t.Fatalf("constraint violation must not commit, got %v", got)
	}
}

func TestCommitField_WindowBounds(t *testing.T) {
	s := newTestSession(t, nil)
	if err := s.CommitField(FieldTimeWindow, "601"); err == nil {
		t.Fatal("expected out-of-bounds error for 601 s")
	}
	if err := s.CommitField(FieldTimeWindow, "0,5"); err == nil {
		t.Fatal("expected out-of-bounds error for 0.5 s")
	}
	if err := s.CommitField(FieldTimeWindow, "600"); err != nil {
		t.Fatalf("600 s is within bounds: %v", err)
	}
}

func TestCommitField_DecimalCommaCommits(t *testing.T) {
	s := newTestSession(t, nil)
	if err := s.CommitField(FieldSamplingRate, "51,2"); err != nil {
		t.Fatalf("comma separator must parse: %v", err)
	}
	if got := s.AppliedHz(); got != 51.2 {
		t.Fatalf("expected applied rate 51.2, got %v", got)
	}
}

func TestRateChange_BracketsDeviceAndHardResets(t *testing.T) {
	dev := &fakeDevice{connected: true}
	s := newTestSession(t, dev)

	s.HandleFrame(gyroFrame(0, 1, 2, 3))
	if err := s.SetSamplingRate(100); err != nil {
		t.Fatalf("SetSamplingRate: %v", err)
	}

	want := []string{"stop", "rate", "start"}
	if len(dev.calls) != 3 {
		t.Fatalf("expected calls %v, got %v", want, dev.calls)
	}
	for i := range want {
		if dev.calls[i] != want[i] {
			t.Fatalf("expected calls %v, got %v", want, dev.calls)
		}
	}
	if vals, _ := s.Snapshot(sensor.GyroscopeX); len(vals) != 0 {
		t.Fatalf("rate change must clear buffers, got %d samples", len(vals))
	}
	if got := dev.hz; got != 32768.0/328.0 {
		t.Fatalf("device should receive the quantized rate, got %v", got)
	}
}

func TestRateChange_DeviceStopFailureSwallowed(t *testing.T) {
	dev := &fakeDevice{connected: true, stopErr: errors.New("already stopped")}
	s := newTestSession(t, dev)
	if err := s.SetSamplingRate(100); err != nil {
		t.Fatalf("stop failure must not surface: %v", err)
	}
}

func TestHandleFrame_IncompleteFrameDroppedWhole(t *testing.T) {
	s := newTestSession(t, nil)
	s.HandleFrame(sensor.Frame{Values: map[sensor.Channel]float32{
		sensor.GyroscopeX: 1, // Y and Z missing
	}})
	if vals, _ := s.Snapshot(sensor.GyroscopeX); len(vals) != 0 {
		t.Fatal("incomplete frame must not update any channel")
	}

	s.HandleFrame(gyroFrame(1, 1, 2, 3))
	x, _ := s.Snapshot(sensor.GyroscopeX)
	y, _ := s.Snapshot(sensor.GyroscopeY)
	if len(x) != 1 || len(y) != 1 {
		t.Fatal("next complete frame must proceed normally")
	}
}

func TestAutoRange_FallbackThenComputed(t *testing.T) {
	s := newTestSession(t, nil)
	if got := s.Range(); got.Min != -250 || got.Max != 250 {
		t.Fatalf("empty buffers should use the gyro fallback, got %v", got)
	}

	// flat signal at 10 across the group: expected [8.9, 11.1]
	for i := 0; i < 5; i++ {
		s.HandleFrame(gyroFrame(uint16(i), 10, 10, 10))
	}
	if got := s.Range(); got.Min != 8.9 || got.Max != 11.1 {
		t.Fatalf("expected flat-signal range [8.9, 11.1], got %v", got)
	}
}

func TestAutoRange_ManualModeIgnoresData(t *testing.T) {
	s := newTestSession(t, nil)
	s.SetAutoRange(false)
	if err := s.SetYAxis(-1, 1); err != nil {
		t.Fatalf("SetYAxis: %v", err)
	}
	s.HandleFrame(gyroFrame(0, 100, 100, 100))
	if got := s.Range(); got.Min != -1 || got.Max != 1 {
		t.Fatalf("manual mode must keep the committed range, got %v", got)
	}
}

func TestSelection_SwitchesFallbackAndDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Sensors = config.SensorConfig{Gyroscope: true, Temperature: true}
	s, err := NewSession(cfg, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	s.SelectChannel(sensor.Temperature)
	if got := s.Range(); got.Min != 15 || got.Max != 40 {
		t.Fatalf("expected temperature fallback [15, 40], got %v", got)
	}

	s.SelectGroup("Gyroscope")
	ch, group := s.Selection()
	if group != "Gyroscope" || ch != sensor.GyroscopeX {
		t.Fatalf("unexpected selection %v / %q", ch, group)
	}

	// unknown names must be ignored
	s.SelectGroup("Nope")
	if _, group := s.Selection(); group != "Gyroscope" {
		t.Fatal("unknown group must not change the selection")
	}
}

func TestRefreshSignalFires(t *testing.T) {
	cfg := config.Default()
	cfg.Sensors = config.SensorConfig{Gyroscope: true}
	fired := 0
	s, err := NewSession(cfg, nil, nil, func() { fired++ })
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.HandleFrame(gyroFrame(0, 1, 2, 3))
	if err := s.SetTimeWindow(20); err != nil {
		t.Fatalf("SetTimeWindow: %v", err)
	}
	if fired < 2 {
		t.Fatalf("expected a refresh per state change, got %d", fired)
	}
}
