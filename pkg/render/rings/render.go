package rings

import (
	"fmt"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/render"
)

// Render turns a ring and its assigned geometry into a primitive tree.
// It panics if ctx was never assigned by a layout pass.
func Render(r board.Ring, ctx board.Context) []render.Node {
	if !ctx.Valid() {
		panic(fmt.Sprintf("rings: %s ring rendered without an assigned context", r.Kind()))
	}

	switch r := r.(type) {
	case board.Rule:
		return renderRule(r, ctx)
	case board.Azimuthal:
		return renderAzimuthal(r, ctx)
	case board.Radial:
		return renderRadial(r, ctx)
	default:
		panic(fmt.Sprintf("rings: unrecognized ring kind %T", r))
	}
}

// layerLetter returns the index-label letter for a network layer.
func layerLetter(layer int) string {
	return string(rune('a' + layer%26))
}
