package device

import (
	"context"
	"encoding/binary"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"bioscope/internal/config"
	"bioscope/internal/sensor"
)

// waveform drives one packet field with a sinusoid plus noise, the same
// trick the firmware simulator uses on the bench.
type waveform struct {
	base  float64
	amp   float64
	freq  float64 // Hz of the sinusoid itself, not the sampling rate
	phase float64
	noise float64
}

func (w waveform) at(t float64) float64 {
	return w.base + w.amp*math.Sin(2*math.Pi*w.freq*t+w.phase) + (rand.Float64()-0.5)*w.noise
}

// MockDevice generates fake biosignal frames for demo mode: no
// hardware required. Packets go through the real decode path so the
// demo exercises the same malformed-frame handling as a live device.
type MockDevice struct {
	mu        sync.Mutex
	hz        float64
	connected bool
	streaming bool
	handler   FrameHandler
	cancel    context.CancelFunc
	log       *slog.Logger

	seq   uint16
	accel [3]waveform
	gyro  [3]waveform
	mag   [3]waveform
	temp  waveform
	battV float64
}

// NewMockDevice creates a demo device with randomized waveforms.
func NewMockDevice(log *slog.Logger) *MockDevice {
	m := &MockDevice{
		hz:    config.DefaultSamplingHz,
		log:   log,
		battV: 3.9 + rand.Float64()*0.25,
	}
	for i := 0; i < 3; i++ {
		m.accel[i] = waveform{amp: 1.5 + rand.Float64(), freq: 0.4 + rand.Float64()*0.8, phase: rand.Float64() * 2 * math.Pi, noise: 0.12}
		m.gyro[i] = waveform{amp: 60 + rand.Float64()*80, freq: 0.2 + rand.Float64()*0.5, phase: rand.Float64() * 2 * math.Pi, noise: 4}
		m.mag[i] = waveform{base: rand.Float64()*0.6 - 0.3, amp: 0.4, freq: 0.1 + rand.Float64()*0.2, phase: rand.Float64() * 2 * math.Pi, noise: 0.02}
	}
	// gravity on Z
	m.accel[2].base = 1.0
	m.temp = waveform{base: 29 + rand.Float64()*3, amp: 0.4, freq: 0.02, noise: 0.05}
	return m
}

func (m *MockDevice) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = true
	return nil
}

func (m *MockDevice) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *MockDevice) SetFrameHandler(h FrameHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = h
}

func (m *MockDevice) SamplingRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hz
}

func (m *MockDevice) SetSamplingRate(hz float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return ErrNotConnected
	}
	m.hz = hz
	return nil
}

func (m *MockDevice) StartStreaming() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.connected {
		return ErrNotConnected
	}
	if m.streaming {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.streaming = true
	go m.loop(ctx)
	return nil
}

func (m *MockDevice) StopStreaming() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.streaming {
		return nil
	}
	m.streaming = false
	if m.cancel != nil {
		m.cancel()
	}
	return nil
}

func (m *MockDevice) Close() error {
	_ = m.StopStreaming()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

func (m *MockDevice) loop(ctx context.Context) {
	m.mu.Lock()
	interval := intervalFor(m.hz)
	m.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mu.Lock()
			if !m.streaming {
				m.mu.Unlock()
				return
			}
			step := 1.0 / m.hz
			if next := intervalFor(m.hz); next != interval {
				interval = next
				ticker.Reset(interval)
			}
			handler := m.handler
			pkt := m.buildPacket(t)
			m.mu.Unlock()

			t += step
			if handler == nil {
				continue
			}

			frame, err := sensor.DecodeFrame(pkt)
			if err != nil {
				if m.log != nil {
					m.log.Debug("dropping malformed frame", "err", err)
				}
				continue
			}
			handler(frame)
		}
	}
}

func intervalFor(hz float64) time.Duration {
	d := time.Duration(float64(time.Second) / hz)
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return d
}

// buildPacket encodes the waveforms into a wire packet. Roughly one
// packet in a thousand comes out truncated, mimicking the radio
// glitches seen on real hardware.
func (m *MockDevice) buildPacket(t float64) []byte {
	buf := make([]byte, sensor.PacketSize)
	binary.LittleEndian.PutUint16(buf[0:], m.seq)
	m.seq++

	put := func(off int, v float64) {
		if v > math.MaxInt16 {
			v = math.MaxInt16
		}
		if v < math.MinInt16 {
			v = math.MinInt16
		}
		binary.LittleEndian.PutUint16(buf[off:], uint16(int16(v)))
	}
	for i := 0; i < 3; i++ {
		put(2+i*2, m.accel[i].at(t)*1000) // m/s^2 -> mm/s^2
		put(8+i*2, m.gyro[i].at(t)*100)   // deg/s -> cdeg/s
		put(14+i*2, m.mag[i].at(t)*1000)  // gauss -> mgauss
	}
	binary.LittleEndian.PutUint16(buf[20:], uint16(m.temp.at(t)*100))
	m.battV -= 0.000001 // slow discharge
	binary.LittleEndian.PutUint16(buf[22:], uint16(m.battV*1000))

	if rand.Float64() < 0.001 {
		return buf[:sensor.PacketSize/2]
	}
	return buf
}
