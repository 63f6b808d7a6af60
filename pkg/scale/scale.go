// Package scale builds the tick sequences engraved on ringforge boards.
//
// A scale maps exact decimal values to angular positions on an annular
// ring. Three builders are provided:
//
//   - [Linear]: fixed-range scales for slider banks (activations, weights)
//   - [Log]: the 1.0–9.9 decade of a circular slide rule
//   - [ReLU]: the symmetric pre/post-clamp dial pair of a ReLU ring
//
// Tick values are shopspring decimals rather than floats: whether a tick
// is a labeled "major" tick depends on exact divisibility, and float
// remainders misclassify boundary ticks (0.3 mod 0.1 != 0 in float64).
// Angles are plain float64 degrees; they feed straight into trigonometry
// and carry no divisibility semantics.
package scale

import (
	"github.com/shopspring/decimal"
)

// Tick is a single graduation: an exact value, its angular position in
// degrees, and an optional label. An empty label marks a minor tick.
type Tick struct {
	Value decimal.Decimal
	Angle float64
	Label string
}

// Labeled reports whether this is a major (labeled) tick.
func (t Tick) Labeled() bool { return t.Label != "" }

// Scale is an ordered, non-empty tick sequence. Values are monotonically
// non-decreasing and angles strictly increasing; the first and last ticks
// define the domain [Min, Max].
type Scale struct {
	Ticks []Tick
}

// Min returns the value of the first tick.
func (s Scale) Min() decimal.Decimal { return s.Ticks[0].Value }

// Max returns the value of the last tick.
func (s Scale) Max() decimal.Decimal { return s.Ticks[len(s.Ticks)-1].Value }

// Len returns the number of ticks.
func (s Scale) Len() int { return len(s.Ticks) }

// AngleSpan returns the angular extent in degrees, from the first tick to
// the last.
func (s Scale) AngleSpan() float64 {
	return s.Ticks[len(s.Ticks)-1].Angle - s.Ticks[0].Angle
}

// Norm maps a tick value onto [0, 1] across the scale's domain. A
// degenerate single-value domain maps everything to 0.
func (s Scale) Norm(v decimal.Decimal) float64 {
	span := s.Max().Sub(s.Min())
	if span.IsZero() {
		return 0
	}
	f, _ := v.Sub(s.Min()).Div(span).Float64()
	return f
}
