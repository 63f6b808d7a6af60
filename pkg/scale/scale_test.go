package scale

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/errors"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertMonotonic checks that values are non-decreasing and angles
// strictly increasing across the whole scale.
func assertMonotonic(t *testing.T, s Scale) {
	t.Helper()
	for i := 1; i < len(s.Ticks); i++ {
		if s.Ticks[i].Value.LessThan(s.Ticks[i-1].Value) {
			t.Errorf("tick %d: value %s < previous %s", i, s.Ticks[i].Value, s.Ticks[i-1].Value)
		}
		if s.Ticks[i].Angle <= s.Ticks[i-1].Angle {
			t.Errorf("tick %d: angle %.4f <= previous %.4f", i, s.Ticks[i].Angle, s.Ticks[i-1].Angle)
		}
	}
}

func TestLinearScenario(t *testing.T) {
	// Linear(0, 1, 0.1, 0.5) yields 11 ticks labeled only at 0, 0.5, 1.
	s, err := Linear(dec("0"), dec("1"), dec("0.1"), dec("0.5"))
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	if s.Len() != 11 {
		t.Fatalf("Len = %d, want 11", s.Len())
	}

	var labels []string
	for _, tick := range s.Ticks {
		if tick.Labeled() {
			labels = append(labels, tick.Label)
		}
	}
	want := []string{"0", "0.5", "1"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, labels[i], want[i])
		}
	}

	assertMonotonic(t, s)
}

func TestLinearFloatDriftDoesNotMisclassify(t *testing.T) {
	// 0.3 is a classic float casualty: 0.1+0.1+0.1 != 0.3 in float64.
	// With decimal stepping it must be recognized as divisible by 0.3.
	s, err := Linear(dec("0"), dec("3"), dec("0.1"), dec("0.3"))
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	for _, tick := range s.Ticks {
		divisible := tick.Value.Mod(dec("0.3")).IsZero()
		if divisible != tick.Labeled() {
			t.Errorf("tick %s: labeled=%v, divisible=%v", tick.Value, tick.Labeled(), divisible)
		}
	}
}

func TestLinearInvalidRange(t *testing.T) {
	tests := []struct {
		name                     string
		start, stop, step, major string
	}{
		{"zero step", "0", "1", "0", "0.5"},
		{"negative step", "0", "1", "-0.1", "0.5"},
		{"start after stop", "2", "1", "0.1", "0.5"},
		{"zero major", "0", "1", "0.1", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Linear(dec(tt.start), dec(tt.stop), dec(tt.step), dec(tt.major))
			if err == nil {
				t.Fatal("want error, got nil")
			}
			if !errors.Is(err, errors.ErrCodeInvalidScale) {
				t.Errorf("error code = %q, want INVALID_SCALE", errors.GetCode(err))
			}
		})
	}
}

func TestLogClosure(t *testing.T) {
	s := Log()

	if !s.Min().Equal(dec("1")) {
		t.Errorf("Min = %s, want 1", s.Min())
	}
	if !s.Max().Equal(dec("9.9")) {
		t.Errorf("Max = %s, want 9.9", s.Max())
	}
	if s.Ticks[0].Angle != 0 {
		t.Errorf("first angle = %.4f, want 0", s.Ticks[0].Angle)
	}
	last := s.Ticks[len(s.Ticks)-1].Angle
	if last >= 360 {
		t.Errorf("last angle = %.4f, want < 360", last)
	}
	if last < 358 {
		t.Errorf("last angle = %.4f, want just under 360", last)
	}

	assertMonotonic(t, s)
}

func TestLogLabelDensity(t *testing.T) {
	s := Log()
	for _, tick := range s.Ticks {
		var want bool
		switch {
		case tick.Value.LessThan(dec("2")):
			want = true
		case tick.Value.LessThanOrEqual(dec("5")):
			want = tick.Value.Mod(dec("0.2")).IsZero()
		default:
			want = tick.Value.Mod(dec("0.5")).IsZero()
		}
		if tick.Labeled() != want {
			t.Errorf("tick %s: labeled=%v, want %v", tick.Value, tick.Labeled(), want)
		}
	}
}

func TestReLUScenario(t *testing.T) {
	// ReLU(10, 0.25): 41 positive ticks plus 41 mirrored minus the two
	// de-duplicated boundary ticks = 80 ticks total.
	outer, inner, err := ReLU(dec("10"), dec("0.25"))
	if err != nil {
		t.Fatalf("ReLU: %v", err)
	}

	if outer.Len() != 80 {
		t.Errorf("outer Len = %d, want 80", outer.Len())
	}
	if inner.Len() != outer.Len() {
		t.Fatalf("inner Len = %d, outer Len = %d; scales must pair up", inner.Len(), outer.Len())
	}

	if !outer.Max().Equal(dec("10")) {
		t.Errorf("outer Max = %s, want 10", outer.Max())
	}
	if !outer.Min().Equal(dec("-9.75")) {
		t.Errorf("outer Min = %s, want -9.75 (the -10 tick shares ±180° with +10)", outer.Min())
	}

	assertMonotonic(t, outer)
}

func TestReLUClampInvariant(t *testing.T) {
	outer, inner, err := ReLU(dec("6"), dec("0.5"))
	if err != nil {
		t.Fatalf("ReLU: %v", err)
	}

	for i := range outer.Ticks {
		ot, it := outer.Ticks[i], inner.Ticks[i]

		// Shared angles at shared indices.
		if ot.Angle != it.Angle {
			t.Errorf("tick %d: outer angle %.4f != inner angle %.4f", i, ot.Angle, it.Angle)
		}

		// innerValue = max(outerValue, 0).
		want := ot.Value
		if want.Sign() < 0 {
			want = decimal.Zero
		}
		if !it.Value.Equal(want) {
			t.Errorf("tick %d: inner value %s, want %s", i, it.Value, want)
		}
		if it.Value.Sign() < 0 {
			t.Errorf("tick %d: inner scale contains negative value %s", i, it.Value)
		}
	}
}

func TestReLULabeling(t *testing.T) {
	outer, inner, err := ReLU(dec("4"), dec("0.5"))
	if err != nil {
		t.Fatalf("ReLU: %v", err)
	}

	for i := range outer.Ticks {
		ot, it := outer.Ticks[i], inner.Ticks[i]

		if got, want := ot.Labeled(), ot.Value.IsInteger(); got != want {
			t.Errorf("outer tick %s: labeled=%v, want %v", ot.Value, got, want)
		}

		// Inner labels only non-negative integer pre-clamp values, so "0"
		// appears once rather than at every clamped negative position.
		want := ot.Value.Sign() >= 0 && ot.Value.IsInteger()
		if it.Labeled() != want {
			t.Errorf("inner tick %d (pre-clamp %s): labeled=%v, want %v", i, ot.Value, it.Labeled(), want)
		}
	}
}

func TestReLUInvalid(t *testing.T) {
	if _, _, err := ReLU(dec("10"), dec("0")); err == nil {
		t.Error("zero delta: want error")
	}
	if _, _, err := ReLU(dec("10"), dec("-1")); err == nil {
		t.Error("negative delta: want error")
	}
	if _, _, err := ReLU(dec("0.1"), dec("0.25")); err == nil {
		t.Error("max <= delta: want error")
	}
}

func TestNorm(t *testing.T) {
	s, err := Linear(dec("-1"), dec("1"), dec("0.5"), dec("1"))
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	if got := s.Norm(dec("-1")); got != 0 {
		t.Errorf("Norm(-1) = %v, want 0", got)
	}
	if got := s.Norm(dec("1")); got != 1 {
		t.Errorf("Norm(1) = %v, want 1", got)
	}
	if got := s.Norm(dec("0")); got != 0.5 {
		t.Errorf("Norm(0) = %v, want 0.5", got)
	}
}
