package scale

import (
	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/errors"
)

// ReLU builds the coupled scale pair of a ReLU clamp ring.
//
// The positive half runs 0, δ, 2δ, … up to maxValue and spans 0°–180°.
// All ticks except the first and last are mirrored (value ↦ −value,
// angle ↦ −angle) to form the negative half; the boundary ticks are
// excluded so 0° and ±180° each carry a single tick. The outer scale is
// the negative half reversed followed by the positive half: the full
// pre-clamp value, symmetric about 0.
//
// The inner scale shares the outer scale's angles tick for tick, with
// every negative value clamped to 0: it reads the post-clamp value of
// whatever the outer dial is set to.
//
// Labeling: the outer scale labels integer ticks. The inner scale labels
// a tick iff its pre-clamp value is a non-negative integer, so the
// clamped zeros along the negative half stay unlabeled and "0" appears
// exactly once, at its originating 0° position.
func ReLU(maxValue, deltaValue decimal.Decimal) (outer, inner Scale, err error) {
	if deltaValue.Sign() <= 0 {
		return Scale{}, Scale{}, errors.New(errors.ErrCodeInvalidScale, "delta must be positive, got %s", deltaValue)
	}
	if maxValue.LessThanOrEqual(deltaValue) {
		return Scale{}, Scale{}, errors.New(errors.ErrCodeInvalidScale, "max %s must exceed delta %s", maxValue, deltaValue)
	}

	maxF, _ := maxValue.Float64()

	var positive []Tick
	for v := decimal.Zero; v.LessThanOrEqual(maxValue); v = v.Add(deltaValue) {
		f, _ := v.Float64()
		positive = append(positive, Tick{Value: v, Angle: 180 * f / maxF})
	}

	// Mirror all but the first and last tick, reversed into ascending order.
	var negative []Tick
	for i := len(positive) - 2; i >= 1; i-- {
		t := positive[i]
		negative = append(negative, Tick{Value: t.Value.Neg(), Angle: -t.Angle})
	}

	outerTicks := append(negative, positive...)

	innerTicks := make([]Tick, len(outerTicks))
	for i, t := range outerTicks {
		ot := Tick{Value: t.Value, Angle: t.Angle}
		if ot.Value.IsInteger() {
			ot.Label = ot.Value.String()
		}

		it := Tick{Value: t.Value, Angle: t.Angle}
		if it.Value.Sign() < 0 {
			it.Value = decimal.Zero
		} else if it.Value.IsInteger() {
			it.Label = it.Value.String()
		}

		outerTicks[i] = ot
		innerTicks[i] = it
	}

	return Scale{Ticks: outerTicks}, Scale{Ticks: innerTicks}, nil
}
