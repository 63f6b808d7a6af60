package rings

import (
	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/render"
)

// labelBandFrac is the share of a rule ring's width reserved at each edge
// for the outer and inner label rows; the tick lines span the middle band.
const labelBandFrac = 0.3

// renderRule engraves a dual-reading scale: a radial tick line per tick,
// the outer reading above it and the inner reading below it, closed by a
// full-cut circle at the ring's outer edge. Labeled (major) ticks get the
// heavy etch class.
func renderRule(r board.Rule, ctx board.Context) []render.Node {
	band := ctx.Width * labelBandFrac
	tickOuter := ctx.OuterRadius - band
	tickInner := ctx.InnerRadius() + band
	fontSize := band * 0.7

	var nodes []render.Node
	for i, tick := range r.Outer.Ticks {
		class := "top etch"
		if tick.Labeled() {
			class = "top etch heavy"
		}

		x1, y1 := point(tick.Angle, tickInner)
		x2, y2 := point(tick.Angle, tickOuter)
		nodes = append(nodes, render.Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Class: class})

		if tick.Labeled() {
			lx, ly := point(tick.Angle, ctx.OuterRadius-band/2)
			nodes = append(nodes, render.Text{
				X: lx, Y: ly, Body: tick.Label, Class: "top etch",
				Size: fontSize, Rotate: tick.Angle,
			})
		}

		// Inner reading: the paired scale when present, otherwise the same
		// scale read from below (plain multiplier dials).
		innerTick := tick
		if r.Inner != nil {
			innerTick = r.Inner.Ticks[i]
		}
		if innerTick.Labeled() {
			lx, ly := point(innerTick.Angle, ctx.InnerRadius()+band/2)
			nodes = append(nodes, render.Text{
				X: lx, Y: ly, Body: innerTick.Label, Class: "top etch",
				Size: fontSize, Rotate: innerTick.Angle,
			})
		}
	}

	nodes = append(nodes, render.Circle{R: ctx.OuterRadius, Class: "top full"})
	return nodes
}
