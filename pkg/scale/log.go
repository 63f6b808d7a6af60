package scale

import (
	"math"

	"github.com/shopspring/decimal"
)

// Log angle projection: one full revolution covers one decade, so
// θ(v) = 360·ln(v)/ln(10).
func logAngle(v float64) float64 {
	return 360 * math.Log(v) / math.Ln10
}

var (
	logStep  = decimal.RequireFromString("0.1")
	logLast  = decimal.RequireFromString("9.9")
	logTwo   = decimal.NewFromInt(2)
	logFive  = decimal.NewFromInt(5)
	logHalf  = decimal.RequireFromString("0.5")
	logFifth = decimal.RequireFromString("0.2")
)

// Log builds the circular slide-rule scale for the 1.0–9.9 decade in
// steps of 0.1. The first tick sits at value 1.0 (angle 0°) and the last
// at 9.9 (just under 360°), so the ring closes on itself: 9.9 is followed
// by 10, which reads as 1.0 again.
//
// Labeling density follows a physical slide rule's legibility needs; the
// log curve is steepest near 1, so labels thin out as v grows:
//
//   - v < 2: every tick is labeled
//   - 2 ≤ v ≤ 5: even tenths are labeled
//   - v > 5: multiples of 0.5 are labeled
//
// The scale is not parameterized because it only makes sense for this one
// decade.
func Log() Scale {
	var ticks []Tick
	for v := decimal.NewFromInt(1); v.LessThanOrEqual(logLast); v = v.Add(logStep) {
		f, _ := v.Float64()
		t := Tick{Value: v, Angle: logAngle(f)}
		if logLabeled(v) {
			t.Label = v.String()
		}
		ticks = append(ticks, t)
	}
	return Scale{Ticks: ticks}
}

func logLabeled(v decimal.Decimal) bool {
	switch {
	case v.LessThan(logTwo):
		return true
	case v.LessThanOrEqual(logFive):
		// Even tenths: divisible by 0.2.
		return v.Mod(logFifth).IsZero()
	default:
		return v.Mod(logHalf).IsZero()
	}
}
