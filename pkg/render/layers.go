package render

import (
	"strings"

	"github.com/ringforge/ringforge/pkg/errors"
)

// Class name fragments used across ring renderers. A node's class list
// combines a face, a kind, and optional modifiers, e.g. "top etch heavy".
const (
	ClassTop    = "top"
	ClassBottom = "bottom"

	ClassFull     = "full"     // through-cut
	ClassEtch     = "etch"     // engraved ticks and labels
	ClassSlider   = "slider"   // slider channel
	ClassRotating = "rotating" // captive rotating-ring void

	ClassHeavy = "heavy" // emphasis modifier for major ticks
	ClassDebug = "debug" // construction geometry, hidden in production
)

// Layer identifies one fabrication pass: a board face, a cut kind, and
// an optional modifier splitting a kind into sub-passes ("heavy" etching
// runs at a different power than the light pass). The debug layer has an
// empty face.
type Layer struct {
	Face string
	Kind string
	Mod  string
}

// String returns the canonical "face kind mod" spelling ("top etch",
// "top etch heavy"), or just the kind for the faceless debug layer.
func (l Layer) String() string {
	parts := make([]string, 0, 3)
	if l.Face != "" {
		parts = append(parts, l.Face)
	}
	parts = append(parts, l.Kind)
	if l.Mod != "" {
		parts = append(parts, l.Mod)
	}
	return strings.Join(parts, " ")
}

// Slug returns a filename-friendly spelling ("top-etch").
func (l Layer) Slug() string {
	return strings.ReplaceAll(l.String(), " ", "-")
}

// selector returns the CSS selector matching exactly the nodes on this
// layer. A modifier-less layer excludes the modifiers of sibling passes
// sharing its face and kind, so suppressing "top etch" leaves the heavy
// sub-pass alone.
func (l Layer) selector() string {
	sel := "." + l.Kind
	if l.Face != "" {
		sel = "." + l.Face + sel
	}
	if l.Mod != "" {
		return sel + "." + l.Mod
	}
	for _, other := range CutLayers {
		if other.Face == l.Face && other.Kind == l.Kind && other.Mod != "" {
			sel += ":not(." + other.Mod + ")"
		}
	}
	return sel
}

// CutLayers is the closed list of fabrication passes a board drawing can
// be split into, in machining order: light etching before heavy, and
// through-cuts last so parts stay captive while etching and channel
// routing happen.
var CutLayers = []Layer{
	{ClassTop, ClassEtch, ""},
	{ClassTop, ClassEtch, ClassHeavy},
	{ClassTop, ClassSlider, ""},
	{ClassTop, ClassFull, ""},
	{ClassBottom, ClassSlider, ""},
	{ClassBottom, ClassRotating, ""},
	{ClassBottom, ClassFull, ""},
	{"", ClassDebug, ""},
}

// ParseLayer resolves a user-supplied layer name ("top etch", "top-etch",
// "debug") to its canonical Layer.
func ParseLayer(s string) (Layer, error) {
	norm := strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	}), " ")
	for _, l := range CutLayers {
		if l.String() == norm {
			return l, nil
		}
	}
	return Layer{}, errors.New(errors.ErrCodeInvalidLayer, "unknown layer %q (valid: %s)", s, LayerNames())
}

// LayerNames returns the canonical layer names, comma separated, for use
// in error and help text.
func LayerNames() string {
	names := make([]string, len(CutLayers))
	for i, l := range CutLayers {
		names[i] = l.String()
	}
	return strings.Join(names, ", ")
}
