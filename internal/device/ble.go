package device

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"bioscope/internal/config"
	"bioscope/internal/sensor"
	"bioscope/internal/stream"
	"tinygo.org/x/bluetooth"
)

// GATT layout of the bioscope firmware: one service with a data
// (notify), a rate-divider (write) and a stream-control (write)
// characteristic.
var (
	svcUUID     = mustUUID("6e400001-c352-11ee-8c90-0242ac120002")
	dataUUID    = mustUUID("6e400002-c352-11ee-8c90-0242ac120002")
	rateUUID    = mustUUID("6e400003-c352-11ee-8c90-0242ac120002")
	controlUUID = mustUUID("6e400004-c352-11ee-8c90-0242ac120002")
)

func mustUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic(err)
	}
	return u
}

// BLEDevice talks to the wearable over Bluetooth Low Energy.
type BLEDevice struct {
	mu        sync.Mutex
	adapter   *bluetooth.Adapter
	name      string // advertised local name to match
	address   string // preferred over name when non-empty
	hz        float64
	connected bool
	streaming bool
	handler   FrameHandler
	log       *slog.Logger

	conn    bluetooth.Device
	data    bluetooth.DeviceCharacteristic
	rate    bluetooth.DeviceCharacteristic
	control bluetooth.DeviceCharacteristic
}

// NewBLEDevice creates a device that will connect to the wearable
// matching name or address.
func NewBLEDevice(name, address string, log *slog.Logger) *BLEDevice {
	return &BLEDevice{
		adapter: bluetooth.DefaultAdapter,
		name:    name,
		address: address,
		hz:      config.DefaultSamplingHz,
		log:     log,
	}
}

// Connect scans for the wearable, connects and discovers the stream
// service. Cancel the context to abort the scan.
func (d *BLEDevice) Connect(ctx context.Context) error {
	if err := d.adapter.Enable(); err != nil {
		return fmt.Errorf("enable BLE adapter: %w (try sudo or setcap cap_net_admin+ep)", err)
	}

	found := make(chan bluetooth.ScanResult, 1)
	scanErr := make(chan error, 1)
	go func() {
		scanErr <- d.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !d.matches(result) {
				return
			}
			select {
			case found <- result:
			default:
			}
			_ = adapter.StopScan()
		})
	}()

	var result bluetooth.ScanResult
	select {
	case result = <-found:
	case err := <-scanErr:
		if err != nil {
			return fmt.Errorf("scan: %w", err)
		}
		return ErrNotFound
	case <-ctx.Done():
		_ = d.adapter.StopScan()
		return ctx.Err()
	}

	conn, err := d.adapter.Connect(result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("connect %s: %w", result.Address.String(), err)
	}

	if err := d.discover(conn); err != nil {
		_ = conn.Disconnect()
		return err
	}

	d.mu.Lock()
	d.conn = conn
	d.connected = true
	d.mu.Unlock()

	d.log.Info("connected", "address", result.Address.String(), "name", result.LocalName())
	return nil
}

func (d *BLEDevice) matches(result bluetooth.ScanResult) bool {
	if d.address != "" {
		return strings.EqualFold(result.Address.String(), d.address)
	}
	return d.name != "" && result.LocalName() == d.name
}

func (d *BLEDevice) discover(conn bluetooth.Device) error {
	svcs, err := conn.DiscoverServices([]bluetooth.UUID{svcUUID})
	if err != nil || len(svcs) == 0 {
		return fmt.Errorf("discover stream service: %w", err)
	}
	chars, err := svcs[0].DiscoverCharacteristics([]bluetooth.UUID{dataUUID, rateUUID, controlUUID})
	if err != nil || len(chars) < 3 {
		return fmt.Errorf("discover characteristics: %w", err)
	}
	d.mu.Lock()
	d.data, d.rate, d.control = chars[0], chars[1], chars[2]
	d.mu.Unlock()
	return nil
}

func (d *BLEDevice) IsConnected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.connected
}

func (d *BLEDevice) SetFrameHandler(h FrameHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = h
}

func (d *BLEDevice) SamplingRate() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hz
}

// SetSamplingRate writes the firmware divider for an already-quantized
// rate.
func (d *BLEDevice) SetSamplingRate(hz float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return ErrNotConnected
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], stream.Divider(hz))
	if _, err := d.rate.WriteWithoutResponse(buf[:]); err != nil {
		return fmt.Errorf("write rate divider: %w", err)
	}
	d.hz = hz
	return nil
}

// StartStreaming subscribes to data notifications and tells the
// firmware to start ticking.
func (d *BLEDevice) StartStreaming() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return ErrNotConnected
	}
	if d.streaming {
		return nil
	}

	if err := d.data.EnableNotifications(d.onNotify); err != nil {
		return fmt.Errorf("enable notifications: %w", err)
	}
	if _, err := d.control.WriteWithoutResponse([]byte{0x01}); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	d.streaming = true
	return nil
}

// StopStreaming tells the firmware to stop. The device may already be
// stopped; callers treat failures as best-effort.
func (d *BLEDevice) StopStreaming() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return ErrNotConnected
	}
	if !d.streaming {
		return nil
	}
	d.streaming = false
	if _, err := d.control.WriteWithoutResponse([]byte{0x00}); err != nil {
		return fmt.Errorf("stop stream: %w", err)
	}
	return nil
}

// onNotify runs on the BLE stack's goroutine, once per tick.
func (d *BLEDevice) onNotify(buf []byte) {
	d.mu.Lock()
	handler := d.handler
	streaming := d.streaming
	d.mu.Unlock()
	if !streaming || handler == nil {
		return
	}

	frame, err := sensor.DecodeFrame(buf)
	if err != nil {
		d.log.Debug("dropping malformed frame", "err", err, "len", len(buf))
		return
	}
	handler(frame)
}

func (d *BLEDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.connected {
		return nil
	}
	d.connected = false
	d.streaming = false
	return d.conn.Disconnect()
}
