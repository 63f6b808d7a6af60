// Package plan defines the canonical serialization format for computed
// board plans.
//
// A [Document] is what gets written to JSON files, cached, stored, and
// returned from the pipeline: the input topology, the board parameters,
// and the allocated geometry of every ring. The format is human-readable
// and designed for round-trip fidelity: a stored document regenerates the
// exact board it was computed from via [Document.Rebuild], rather than by
// parsing geometry back out of the drawing.
package plan

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/errors"
)

// Topology is the three unit counts of a feed-forward network.
type Topology struct {
	NInput  int `json:"n_input" bson:"n_input"`
	NHidden int `json:"n_hidden" bson:"n_hidden"`
	NOutput int `json:"n_output" bson:"n_output"`
}

// Board holds the apparatus-level layout parameters.
type Board struct {
	DiameterMM       float64 `json:"diameter_mm" bson:"diameter_mm"`
	CenterDiameterMM float64 `json:"center_diameter_mm,omitempty" bson:"center_diameter_mm,omitempty"`
	PaddingMM        float64 `json:"padding_mm,omitempty" bson:"padding_mm,omitempty"`
	Policy           string  `json:"policy,omitempty" bson:"policy,omitempty"`
}

// Scales holds the ring construction parameters. Clamp values are kept
// as decimal strings so a stored document regenerates exactly the ticks
// it was built with. Zero values mean the generator defaults.
type Scales struct {
	ClampMax         string  `json:"clamp_max,omitempty" bson:"clamp_max,omitempty"`
	ClampDelta       string  `json:"clamp_delta,omitempty" bson:"clamp_delta,omitempty"`
	RuleWidthMM      float64 `json:"rule_width_mm,omitempty" bson:"rule_width_mm,omitempty"`
	AzimuthalWidthMM float64 `json:"azimuthal_width_mm,omitempty" bson:"azimuthal_width_mm,omitempty"`
}

// RingInfo is one allocated ring: its kind, shape, and assigned geometry.
type RingInfo struct {
	Kind            string  `json:"kind" bson:"kind"`
	Name            string  `json:"name,omitempty" bson:"name,omitempty"`
	OuterRadiusMM   float64 `json:"outer_radius_mm" bson:"outer_radius_mm"`
	WidthMM         float64 `json:"width_mm" bson:"width_mm"`
	Layer           int     `json:"layer" bson:"layer"`
	Sliders         int     `json:"sliders,omitempty" bson:"sliders,omitempty"`
	Groups          int     `json:"groups,omitempty" bson:"groups,omitempty"`
	SlidersPerGroup int     `json:"sliders_per_group,omitempty" bson:"sliders_per_group,omitempty"`
}

// ChannelInfo is an auxiliary rotating channel annulus.
type ChannelInfo struct {
	OuterRadiusMM float64 `json:"outer_radius_mm" bson:"outer_radius_mm"`
	InnerRadiusMM float64 `json:"inner_radius_mm" bson:"inner_radius_mm"`
}

// FastenerInfo is a screw hole on the center plate.
type FastenerInfo struct {
	Angle      float64 `json:"angle" bson:"angle"`
	RadiusMM   float64 `json:"radius_mm" bson:"radius_mm"`
	DiameterMM float64 `json:"diameter_mm" bson:"diameter_mm"`
}

// Document is a fully described board plan.
type Document struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`

	Topology Topology `json:"topology" bson:"topology"`
	Board    Board    `json:"board" bson:"board"`
	Scales   Scales   `json:"scales,omitempty" bson:"scales,omitempty"`

	Rings     []RingInfo     `json:"rings" bson:"rings"`
	Channels  []ChannelInfo  `json:"channels,omitempty" bson:"channels,omitempty"`
	Fasteners []FastenerInfo `json:"fasteners,omitempty" bson:"fasteners,omitempty"`
}

// FromPlan converts an allocated board plan into its serialization format.
// The topology options must be the ones the rings were generated with;
// they ride along so Rebuild reproduces the same board.
func FromPlan(topo Topology, topoOpts board.TopologyOptions, p board.Plan) Document {
	doc := Document{
		Topology: topo,
		Board: Board{
			DiameterMM:       p.Config.DiameterMM,
			CenterDiameterMM: p.Config.CenterDiameterMM,
			PaddingMM:        p.Config.PaddingMM,
			Policy:           p.Config.Policy,
		},
		Scales: scalesFromOptions(topoOpts),
		Rings:  make([]RingInfo, len(p.Placements)),
	}

	for i, placement := range p.Placements {
		info := RingInfo{
			Kind:          placement.Ring.Kind(),
			OuterRadiusMM: placement.Ctx.OuterRadius,
			WidthMM:       placement.Ctx.Width,
			Layer:         placement.Ctx.Layer,
		}
		switch r := placement.Ring.(type) {
		case board.Rule:
			info.Name = r.Name
		case board.Azimuthal:
			info.Sliders = r.Sliders
		case board.Radial:
			info.Groups = r.Groups
			info.SlidersPerGroup = r.SlidersPerGroup
		}
		doc.Rings[i] = info
	}

	for _, ch := range p.Channels {
		doc.Channels = append(doc.Channels, ChannelInfo{
			OuterRadiusMM: ch.OuterRadius,
			InnerRadiusMM: ch.InnerRadius,
		})
	}
	for _, f := range p.Fasteners {
		doc.Fasteners = append(doc.Fasteners, FastenerInfo{
			Angle: f.Angle, RadiusMM: f.Radius, DiameterMM: f.DiameterMM,
		})
	}

	return doc
}

// scalesFromOptions records the non-default ring construction parameters.
func scalesFromOptions(opts board.TopologyOptions) Scales {
	s := Scales{
		RuleWidthMM:      opts.RuleWidthMM,
		AzimuthalWidthMM: opts.AzimuthalWidthMM,
	}
	if !opts.ClampMax.IsZero() {
		s.ClampMax = opts.ClampMax.String()
	}
	if !opts.ClampDelta.IsZero() {
		s.ClampDelta = opts.ClampDelta.String()
	}
	return s
}

// topologyOptions restores the ring construction parameters.
func (s Scales) topologyOptions() (board.TopologyOptions, error) {
	opts := board.TopologyOptions{
		RuleWidthMM:      s.RuleWidthMM,
		AzimuthalWidthMM: s.AzimuthalWidthMM,
	}
	var err error
	if s.ClampMax != "" {
		if opts.ClampMax, err = decimal.NewFromString(s.ClampMax); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse clamp_max %q", s.ClampMax)
		}
	}
	if s.ClampDelta != "" {
		if opts.ClampDelta, err = decimal.NewFromString(s.ClampDelta); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse clamp_delta %q", s.ClampDelta)
		}
	}
	return opts, nil
}

// Rebuild regenerates the rings and allocated plan this document
// describes. Scales and geometry are recomputed from the topology, the
// recorded construction parameters, and the board parameters, which
// keeps a stored document consistent with the generators by
// construction.
func (d Document) Rebuild() ([]board.Ring, board.Plan, error) {
	topoOpts, err := d.Scales.topologyOptions()
	if err != nil {
		return nil, board.Plan{}, err
	}

	rings, err := board.FromTopology(d.Topology.NInput, d.Topology.NHidden, d.Topology.NOutput, topoOpts)
	if err != nil {
		return nil, board.Plan{}, err
	}

	p, err := board.Layout(board.Config{
		DiameterMM:       d.Board.DiameterMM,
		CenterDiameterMM: d.Board.CenterDiameterMM,
		PaddingMM:        d.Board.PaddingMM,
		Policy:           d.Board.Policy,
	}, rings)
	if err != nil {
		return nil, board.Plan{}, err
	}

	return rings, p, nil
}

// Marshal encodes the document as indented JSON.
func (d Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode plan document")
	}
	return data, nil
}

// Unmarshal decodes a document from JSON.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode plan document")
	}
	return d, nil
}
