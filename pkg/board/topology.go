package board

import (
	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/scale"
)

// Default ring widths in millimetres. Rule rings only need room for two
// label rows; azimuthal rings hold a finger-operated slider.
const (
	DefaultRuleWidthMM      = 12.0
	DefaultAzimuthalWidthMM = 18.0
)

// TopologyOptions tune the scales engraved on the generated rings.
// The zero value selects the defaults.
type TopologyOptions struct {
	// ClampMax and ClampDelta parameterize the ReLU ring; defaults 10 and 0.25.
	ClampMax   decimal.Decimal
	ClampDelta decimal.Decimal

	// RuleWidthMM and AzimuthalWidthMM override the fixed ring widths.
	RuleWidthMM      float64
	AzimuthalWidthMM float64
}

func (o *TopologyOptions) setDefaults() {
	if o.ClampMax.IsZero() {
		o.ClampMax = decimal.NewFromInt(10)
	}
	if o.ClampDelta.IsZero() {
		o.ClampDelta = decimal.RequireFromString("0.25")
	}
	if o.RuleWidthMM == 0 {
		o.RuleWidthMM = DefaultRuleWidthMM
	}
	if o.AzimuthalWidthMM == 0 {
		o.AzimuthalWidthMM = DefaultAzimuthalWidthMM
	}
}

// FromTopology builds the standard ring sequence for a three-layer
// feed-forward network, outermost first:
//
//	log stator, log rotor,                      (multiplication dial pair)
//	azimuthal(nInput),                          (input activations)
//	radial(nHidden × nInput),                   (first weight matrix)
//	azimuthal(nHidden),                         (hidden activations)
//	radial(nOutput × nHidden),                  (second weight matrix)
//	azimuthal(nOutput),                         (output activations)
//	rule(ReLU clamp)
//
// Adjacent radial rings always have Groups equal to the inner azimuthal
// neighbor's slider count and SlidersPerGroup equal to the outer one's,
// by construction.
func FromTopology(nInput, nHidden, nOutput int, opts TopologyOptions) ([]Ring, error) {
	if err := errors.ValidateTopology(nInput, nHidden, nOutput); err != nil {
		return nil, err
	}
	opts.setDefaults()

	inputScale, err := scale.Linear(
		decimal.Zero, decimal.NewFromInt(1),
		decimal.RequireFromString("0.1"), decimal.RequireFromString("0.5"))
	if err != nil {
		return nil, err
	}

	activationScale, err := scale.Linear(
		decimal.Zero, opts.ClampMax,
		decimal.RequireFromString("0.5"), decimal.NewFromInt(5))
	if err != nil {
		return nil, err
	}

	weightScale, err := scale.Linear(
		decimal.NewFromInt(-2), decimal.NewFromInt(2),
		decimal.RequireFromString("0.25"), decimal.NewFromInt(1))
	if err != nil {
		return nil, err
	}

	clampOuter, clampInner, err := scale.ReLU(opts.ClampMax, opts.ClampDelta)
	if err != nil {
		return nil, err
	}

	logScale := scale.Log()

	return []Ring{
		Rule{Name: "log stator", WidthMM: opts.RuleWidthMM, Outer: logScale},
		Rule{Name: "log rotor", WidthMM: opts.RuleWidthMM, Outer: logScale},
		Azimuthal{WidthMM: opts.AzimuthalWidthMM, Scale: inputScale, Sliders: nInput},
		Radial{Scale: weightScale, Groups: nHidden, SlidersPerGroup: nInput},
		Azimuthal{WidthMM: opts.AzimuthalWidthMM, Scale: activationScale, Sliders: nHidden},
		Radial{Scale: weightScale, Groups: nOutput, SlidersPerGroup: nHidden},
		Azimuthal{WidthMM: opts.AzimuthalWidthMM, Scale: activationScale, Sliders: nOutput},
		Rule{Name: "relu clamp", WidthMM: opts.RuleWidthMM, Outer: clampOuter, Inner: &clampInner},
	}, nil
}
