package sensor

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Frame is one decoded tick from the device: a value per channel.
type Frame struct {
	Seq    uint16
	Values map[Channel]float32
}

// Notification packet layout (little-endian), 24 bytes:
//
//	0   uint16  sequence counter
//	2   int16   accel X/Y/Z     LSB = 1 mm/s^2
//	8   int16   gyro X/Y/Z      LSB = 0.01 deg/s
//	14  int16   mag X/Y/Z       LSB = 1 mgauss
//	20  uint16  temperature     LSB = 0.01 degC
//	22  uint16  battery         LSB = 1 mV
const PacketSize = 24

const (
	accelScale = 0.001
	gyroScale  = 0.01
	magScale   = 0.001
	tempScale  = 0.01
)

// Battery voltage to charge-percent mapping endpoints (Li-Po).
const (
	battEmptyV = 3.3
	battFullV  = 4.2
)

var ErrShortPacket = errors.New("short packet")

// DecodeFrame parses one notification packet. A malformed packet is an
// error; the caller drops the whole tick so no channel sees a partial
// update.
func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < PacketSize {
		return Frame{}, fmt.Errorf("%w: %d bytes, want %d", ErrShortPacket, len(buf), PacketSize)
	}

	i16 := func(off int) float32 {
		return float32(int16(binary.LittleEndian.Uint16(buf[off:])))
	}

	battV := float32(binary.LittleEndian.Uint16(buf[22:])) / 1000.0

	f := Frame{
		Seq: binary.LittleEndian.Uint16(buf[0:]),
		Values: map[Channel]float32{
			AccelerometerX: i16(2) * accelScale,
			AccelerometerY: i16(4) * accelScale,
			AccelerometerZ: i16(6) * accelScale,
			GyroscopeX:     i16(8) * gyroScale,
			GyroscopeY:     i16(10) * gyroScale,
			GyroscopeZ:     i16(12) * gyroScale,
			MagnetometerX:  i16(14) * magScale,
			MagnetometerY:  i16(16) * magScale,
			MagnetometerZ:  i16(18) * magScale,
			Temperature:    float32(binary.LittleEndian.Uint16(buf[20:])) * tempScale,
			BatteryVoltage: battV,
			BatteryPercent: batteryPercent(battV),
		},
	}
	return f, nil
}

func batteryPercent(v float32) float32 {
	pct := (v - battEmptyV) / (battFullV - battEmptyV) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
