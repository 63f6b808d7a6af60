package scale

import (
	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/errors"
)

// Linear builds a fixed-range scale from start to stop inclusive,
// stepping by step. A tick is labeled with its normalized decimal string
// iff its value is exactly divisible by majorStep. Angles are assigned
// proportionally over a full revolution; ring renderers re-project them
// onto whatever angular window they actually occupy.
//
// Stepping is done in decimal arithmetic, so long scales do not drift the
// way repeated float addition would.
func Linear(start, stop, step, majorStep decimal.Decimal) (Scale, error) {
	if step.Sign() <= 0 {
		return Scale{}, errors.New(errors.ErrCodeInvalidScale, "step must be positive, got %s", step)
	}
	if majorStep.Sign() <= 0 {
		return Scale{}, errors.New(errors.ErrCodeInvalidScale, "major step must be positive, got %s", majorStep)
	}
	if start.GreaterThan(stop) {
		return Scale{}, errors.New(errors.ErrCodeInvalidScale, "start %s is greater than stop %s", start, stop)
	}

	span := stop.Sub(start)
	var ticks []Tick
	for v := start; v.LessThanOrEqual(stop); v = v.Add(step) {
		angle := 0.0
		if !span.IsZero() {
			f, _ := v.Sub(start).Div(span).Float64()
			angle = 360 * f
		}
		t := Tick{Value: v, Angle: angle}
		if v.Mod(majorStep).IsZero() {
			t.Label = v.String()
		}
		ticks = append(ticks, t)
	}

	return Scale{Ticks: ticks}, nil
}
