package sensor

import (
	"testing"

	"bioscope/internal/config"
)

func TestGroupMembership(t *testing.T) {
	members := GroupMembers("Gyroscope")
	if len(members) != 3 {
		t.Fatalf("expected 3 gyro channels, got %d", len(members))
	}
	if GroupOf(GyroscopeY) != "Gyroscope" {
		t.Fatalf("GyroscopeY should belong to Gyroscope, got %q", GroupOf(GyroscopeY))
	}
	if GroupOf(Temperature) != "" {
		t.Fatal("Temperature is groupless")
	}
	if GroupMembers("Nope") != nil {
		t.Fatal("unknown group should yield nil")
	}
}

func TestGroupMembers_ReturnsCopy(t *testing.T) {
	a := GroupMembers("Accelerometer")
	a[0] = "Tampered"
	b := GroupMembers("Accelerometer")
	if b[0] != AccelerometerX {
		t.Fatal("static table must not be mutable through the returned slice")
	}
}

func TestFallbackRanges(t *testing.T) {
	for ch, want := range map[Channel][2]float64{
		AccelerometerZ: {-5, 5},
		GyroscopeX:     {-250, 250},
		Temperature:    {15, 40},
		BatteryVoltage: {3.3, 4.2},
		BatteryPercent: {0, 100},
	} {
		lo, hi := FallbackRange(ch)
		if lo != want[0] || hi != want[1] {
			t.Fatalf("%s: expected [%v, %v], got [%v, %v]", ch, want[0], want[1], lo, hi)
		}
	}
	lo, hi := FallbackRange(Channel("Mystery"))
	if lo >= hi {
		t.Fatal("unknown channel fallback must still satisfy min < max")
	}
}

func TestEnabledChannels(t *testing.T) {
	chs := EnabledChannels(config.SensorConfig{Gyroscope: true, Battery: true})
	want := []Channel{GyroscopeX, GyroscopeY, GyroscopeZ, BatteryVoltage, BatteryPercent}
	if len(chs) != len(want) {
		t.Fatalf("expected %d channels, got %d", len(want), len(chs))
	}
	for i := range want {
		if chs[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], chs[i])
		}
	}
	if got := EnabledChannels(config.SensorConfig{}); len(got) != 0 {
		t.Fatalf("no sensors enabled should yield no channels, got %v", got)
	}
}
