package sensor

import "bioscope/internal/config"

// Channel is one named scalar signal stream.
type Channel string

const (
	AccelerometerX Channel = "AccelerometerX"
	AccelerometerY Channel = "AccelerometerY"
	AccelerometerZ Channel = "AccelerometerZ"
	GyroscopeX     Channel = "GyroscopeX"
	GyroscopeY     Channel = "GyroscopeY"
	GyroscopeZ     Channel = "GyroscopeZ"
	MagnetometerX  Channel = "MagnetometerX"
	MagnetometerY  Channel = "MagnetometerY"
	MagnetometerZ  Channel = "MagnetometerZ"
	Temperature    Channel = "Temperature"
	BatteryVoltage Channel = "BatteryVoltage"
	BatteryPercent Channel = "BatteryPercent"
)

// groups is the static group-membership table. Groups exist for
// multi-line chart mode and combined auto-ranging; membership is not
// stored per channel instance.
var groups = map[string][]Channel{
	"Accelerometer": {AccelerometerX, AccelerometerY, AccelerometerZ},
	"Gyroscope":     {GyroscopeX, GyroscopeY, GyroscopeZ},
	"Magnetometer":  {MagnetometerX, MagnetometerY, MagnetometerZ},
}

// GroupMembers returns the channels of a group, or nil for an unknown
// group name.
func GroupMembers(group string) []Channel {
	members, ok := groups[group]
	if !ok {
		return nil
	}
	out := make([]Channel, len(members))
	copy(out, members)
	return out
}

// GroupOf returns the group a channel belongs to, or "" for grouped-less
// channels like Temperature.
func GroupOf(ch Channel) string {
	for name, members := range groups {
		for _, m := range members {
			if m == ch {
				return name
			}
		}
	}
	return ""
}

// fallbackRanges holds the physically-motivated static axis bounds used
// when a buffer is empty. Units match the decoded values: m/s^2, deg/s,
// gauss, degC, V, percent.
var fallbackRanges = map[Channel][2]float64{
	AccelerometerX: {-5, 5},
	AccelerometerY: {-5, 5},
	AccelerometerZ: {-5, 5},
	GyroscopeX:     {-250, 250},
	GyroscopeY:     {-250, 250},
	GyroscopeZ:     {-250, 250},
	MagnetometerX:  {-5, 5},
	MagnetometerY:  {-5, 5},
	MagnetometerZ:  {-5, 5},
	Temperature:    {15, 40},
	BatteryVoltage: {3.3, 4.2},
	BatteryPercent: {0, 100},
}

// FallbackRange returns the static axis bounds for a channel. Unknown
// channels get a generic 0..1 range.
func FallbackRange(ch Channel) (min, max float64) {
	if r, ok := fallbackRanges[ch]; ok {
		return r[0], r[1]
	}
	return 0, 1
}

// Unit returns the display unit for a channel.
func Unit(ch Channel) string {
	switch ch {
	case AccelerometerX, AccelerometerY, AccelerometerZ:
		return "m/s2"
	case GyroscopeX, GyroscopeY, GyroscopeZ:
		return "deg/s"
	case MagnetometerX, MagnetometerY, MagnetometerZ:
		return "gauss"
	case Temperature:
		return "degC"
	case BatteryVoltage:
		return "V"
	case BatteryPercent:
		return "%"
	}
	return ""
}

// EnabledChannels returns the channel set for the enabled sensors, in
// fixed display order.
func EnabledChannels(sensors config.SensorConfig) []Channel {
	var chs []Channel
	if sensors.Accelerometer {
		chs = append(chs, AccelerometerX, AccelerometerY, AccelerometerZ)
	}
	if sensors.Gyroscope {
		chs = append(chs, GyroscopeX, GyroscopeY, GyroscopeZ)
	}
	if sensors.Magnetometer {
		chs = append(chs, MagnetometerX, MagnetometerY, MagnetometerZ)
	}
	if sensors.Temperature {
		chs = append(chs, Temperature)
	}
	if sensors.Battery {
		chs = append(chs, BatteryVoltage, BatteryPercent)
	}
	return chs
}
