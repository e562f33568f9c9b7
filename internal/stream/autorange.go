package stream

import (
	"math"

	"bioscope/internal/config"
)

// AxisRange is a pair of Y-axis bounds with Min strictly below Max.
type AxisRange struct {
	Min float64
	Max float64
}

// ComputeRange derives axis bounds from the data extrema. A flat
// signal (span below FlatSignalEps) gets a margin proportional to its
// magnitude so the line never sits on the chart edge; otherwise the
// span is padded by RangeMarginFrac on each side. Both bounds are
// rounded to RangeRoundDigits decimals.
func ComputeRange(min, max float64) AxisRange {
	if math.Abs(max-min) < config.FlatSignalEps {
		center := (min + max) / 2
		margin := math.Abs(center)*config.RangeMarginFrac + config.RangeMarginFrac
		return AxisRange{
			Min: round3(center - margin),
			Max: round3(center + margin),
		}
	}
	margin := (max - min) * config.RangeMarginFrac
	return AxisRange{
		Min: round3(min - margin),
		Max: round3(max + margin),
	}
}

// DiffersFrom reports whether either bound moved by more than the
// hysteresis threshold. Sub-threshold changes are dropped to avoid
// axis jitter from noise-floor fluctuations at high sampling rates.
func (a AxisRange) DiffersFrom(b AxisRange) bool {
	return math.Abs(a.Min-b.Min) > config.RangeHysteresis ||
		math.Abs(a.Max-b.Max) > config.RangeHysteresis
}

func round3(v float64) float64 {
	pow := math.Pow(10, config.RangeRoundDigits)
	return math.Round(v*pow) / pow
}
