package board

import (
	"github.com/ringforge/ringforge/pkg/errors"
)

// Width allocation policies for elastic (radial) rings.
const (
	// PolicyEqual splits the leftover radius evenly. Weight-matrix rings
	// carry no inherent natural width, so equal sharing is the default.
	PolicyEqual = "equal"

	// PolicyWeighted splits proportionally to Groups × SlidersPerGroup,
	// so larger weight matrices get more radial travel per slider.
	PolicyWeighted = "weighted"
)

// Fastener hole placement on the center plate.
const (
	fastenerCount      = 4
	fastenerDiameterMM = 3.2 // clearance for an M3 machine screw
)

// Config holds the apparatus-level layout parameters.
type Config struct {
	DiameterMM       float64 // apparatus outer diameter
	CenterDiameterMM float64 // reserved center plate (logo/QR)
	PaddingMM        float64 // fixed gap between adjacent rings
	Policy           string  // PolicyEqual (default) or PolicyWeighted
}

// Context is a ring's assigned geometry: where its outer edge sits, how
// wide it is, and which network layer it belongs to. Contexts are
// computed once per layout pass and consumed exactly once by the
// matching renderer.
type Context struct {
	OuterRadius float64
	Width       float64
	Layer       int
}

// Valid reports whether the context was actually assigned by a layout
// pass. Rendering with an unassigned context is a programming error.
func (c Context) Valid() bool {
	return c.OuterRadius > 0 && c.Width > 0
}

// InnerRadius returns the ring's inner edge.
func (c Context) InnerRadius() float64 { return c.OuterRadius - c.Width }

// Placement pairs a ring with its assigned context.
type Placement struct {
	Ring Ring
	Ctx  Context
}

// Channel is an auxiliary bottom rotating annulus between two rule rings;
// the captive rotor of the multiplier pair rides in it.
type Channel struct {
	OuterRadius float64
	InnerRadius float64
}

// Fastener is a through-hole for a machine screw on the center plate.
type Fastener struct {
	Angle      float64 // degrees clockwise from 12 o'clock
	Radius     float64 // distance from board center
	DiameterMM float64
}

// Plan is a fully allocated board: every ring has its context, plus the
// mechanical extras the fabrication drawing needs.
type Plan struct {
	Config     Config
	Placements []Placement // outermost first
	Channels   []Channel
	Fasteners  []Fastener
}

// Radius returns the apparatus outer radius.
func (p Plan) Radius() float64 { return p.Config.DiameterMM / 2 }

// Layout assigns each ring its radial position and width.
//
// Fixed-width rings (rule, azimuthal) keep their declared widths; the
// space left inside the apparatus after fixed widths, inter-ring padding,
// and the reserved center plate is divided among the radial rings
// according to cfg.Policy. Rings are then walked outermost first,
// decrementing a running radius by width plus padding.
//
// The layer index increments once per network ring (azimuthal or radial)
// and is held constant across rule rings, which exist purely for scale
// display.
func Layout(cfg Config, rings []Ring) (Plan, error) {
	if len(rings) == 0 {
		return Plan{}, errors.New(errors.ErrCodeInvalidRing, "no rings to lay out")
	}
	if cfg.DiameterMM <= 0 {
		return Plan{}, errors.New(errors.ErrCodeInvalidConfig, "apparatus diameter must be positive, got %.1fmm", cfg.DiameterMM)
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyEqual
	}
	if cfg.Policy != PolicyEqual && cfg.Policy != PolicyWeighted {
		return Plan{}, errors.New(errors.ErrCodeInvalidConfig, "unknown width policy %q", cfg.Policy)
	}

	radius := cfg.DiameterMM / 2
	centerRadius := cfg.CenterDiameterMM / 2
	padTotal := cfg.PaddingMM * float64(len(rings)-1)

	var fixedSum float64
	var elastic []Radial
	for _, r := range rings {
		switch r := r.(type) {
		case Rule, Azimuthal:
			w, _ := r.FixedWidth()
			fixedSum += w
		case Radial:
			elastic = append(elastic, r)
		default:
			return Plan{}, errors.New(errors.ErrCodeInvalidRing, "unrecognized ring kind %T", r)
		}
	}

	available := radius - centerRadius - padTotal - fixedSum
	if available < 0 {
		return Plan{}, errors.New(errors.ErrCodeLayoutOverflow,
			"fixed ring widths need %.1fmm but only %.1fmm of radius is available (diameter %.1fmm, center %.1fmm, padding %.1fmm)",
			fixedSum, radius-centerRadius-padTotal, cfg.DiameterMM, cfg.CenterDiameterMM, cfg.PaddingMM)
	}

	elasticWidth := elasticWidths(cfg.Policy, elastic, available)

	plan := Plan{Config: cfg}
	running := radius
	layer := 0
	elasticIdx := 0

	for i, r := range rings {
		var w float64
		ringLayer := layer
		switch r.(type) {
		case Rule:
			w, _ = r.FixedWidth()
			// Rule rings display scales; they do not advance the layer.
			if i > 0 {
				if _, ok := rings[i-1].(Rule); ok {
					// Two adjacent rule rings form a stator/rotor pair; the
					// rotor needs a rotating channel in the gap between them.
					prev := plan.Placements[i-1].Ctx
					plan.Channels = append(plan.Channels, Channel{
						OuterRadius: prev.InnerRadius(),
						InnerRadius: running,
					})
				}
			}
		case Azimuthal:
			w, _ = r.FixedWidth()
			layer++
		case Radial:
			w = elasticWidth[elasticIdx]
			elasticIdx++
			layer++
		}

		plan.Placements = append(plan.Placements, Placement{
			Ring: r,
			Ctx:  Context{OuterRadius: running, Width: w, Layer: ringLayer},
		})
		running -= w + cfg.PaddingMM
	}

	plan.Fasteners = fasteners(centerRadius)
	return plan, nil
}

// elasticWidths splits the available radius among the radial rings.
func elasticWidths(policy string, elastic []Radial, available float64) []float64 {
	widths := make([]float64, len(elastic))
	if len(elastic) == 0 {
		return widths
	}

	switch policy {
	case PolicyWeighted:
		total := 0
		for _, r := range elastic {
			total += r.SliderCount()
		}
		if total == 0 {
			break
		}
		for i, r := range elastic {
			widths[i] = available * float64(r.SliderCount()) / float64(total)
		}
		return widths
	}

	for i := range widths {
		widths[i] = available / float64(len(elastic))
	}
	return widths
}

// fasteners places the center plate screw holes. With no center plate
// (centerRadius 0) there is nothing to fasten.
func fasteners(centerRadius float64) []Fastener {
	if centerRadius <= 0 {
		return nil
	}
	holes := make([]Fastener, fastenerCount)
	for i := range holes {
		holes[i] = Fastener{
			Angle:      45 + float64(i)*360/fastenerCount,
			Radius:     centerRadius * 0.6,
			DiameterMM: fastenerDiameterMM,
		}
	}
	return holes
}
