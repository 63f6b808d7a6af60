package board

import (
	"fmt"

	"github.com/ringforge/ringforge/pkg/scale"
)

// Ring kind names, used in serialized plans and CLI output.
const (
	KindRule      = "rule"
	KindAzimuthal = "azimuthal"
	KindRadial    = "radial"
)

// Ring is one annular band of the apparatus. The implementations are
// exactly Rule, Azimuthal, and Radial; consumers switch exhaustively.
type Ring interface {
	ring()

	// Kind returns the ring's kind name.
	Kind() string

	// FixedWidth returns the declared width in millimetres and true for
	// fixed-width rings, or 0 and false for elastic (radial) rings.
	FixedWidth() (float64, bool)
}

// Rule is a fixed-width annular scale. Outer is read above the tick
// line and Inner, when present, below it, in the slide-rule style dual
// reading. A ReLU clamp ring pairs its pre-clamp scale (Outer) with the
// clamped one (Inner); a plain multiplier dial leaves Inner nil and reads
// Outer on both sides.
type Rule struct {
	Name    string // display name, e.g. "log stator"
	WidthMM float64
	Outer   scale.Scale
	Inner   *scale.Scale
}

// Azimuthal is a slider bank with one arc-shaped slider per scalar unit
// of a network layer.
type Azimuthal struct {
	WidthMM float64
	Scale   scale.Scale
	Sliders int
}

// Radial represents a weight matrix of shape Groups × SlidersPerGroup:
// Groups is the downstream layer's unit count, SlidersPerGroup the
// upstream layer's. Width is assigned by the layout allocator.
type Radial struct {
	Scale           scale.Scale
	Groups          int
	SlidersPerGroup int
}

func (Rule) ring()      {}
func (Azimuthal) ring() {}
func (Radial) ring()    {}

func (Rule) Kind() string      { return KindRule }
func (Azimuthal) Kind() string { return KindAzimuthal }
func (Radial) Kind() string    { return KindRadial }

func (r Rule) FixedWidth() (float64, bool)      { return r.WidthMM, true }
func (r Azimuthal) FixedWidth() (float64, bool) { return r.WidthMM, true }
func (Radial) FixedWidth() (float64, bool)      { return 0, false }

// SliderCount returns Groups × SlidersPerGroup, the total channel count.
func (r Radial) SliderCount() int { return r.Groups * r.SlidersPerGroup }

// Describe returns a short human-readable summary for tables and logs.
func Describe(r Ring) string {
	switch r := r.(type) {
	case Rule:
		if r.Name != "" {
			return fmt.Sprintf("rule (%s)", r.Name)
		}
		return "rule"
	case Azimuthal:
		return fmt.Sprintf("azimuthal ×%d", r.Sliders)
	case Radial:
		return fmt.Sprintf("radial %d×%d", r.Groups, r.SlidersPerGroup)
	default:
		return "unknown"
	}
}
