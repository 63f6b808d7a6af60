package rings

import (
	"fmt"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/render"
)

const (
	// radMarginMM keeps channel ends clear of the ring edges so rounded
	// caps don't breach into neighboring rings.
	radMarginMM = 3.0

	radGrooveWidthMM = 2.0
	radBodyWidthMM   = 6.0
	radBodyExtMM     = 3.0

	// radGuideGapMM is the physical gap cut out of each guide circle at
	// group boundaries, so guide arcs don't collide with the group index
	// labels sitting there.
	radGuideGapMM = 7.0
)

// renderRadial cuts a weight matrix: Groups angular groups, each holding
// SlidersPerGroup straight radial channels, over concentric guide circles
// marking the scale values. Sliders are spaced with SlidersPerGroup+1
// divisions so none falls on a group boundary.
func renderRadial(r board.Radial, ctx board.Context) []render.Node {
	sweep := 360.0 / float64(r.Groups)
	chanOuter := ctx.OuterRadius - radMarginMM
	chanInner := ctx.InnerRadius() + radMarginMM

	var nodes []render.Node

	// Guide circles underneath the sliders, one per scale tick, composed
	// of per-group arcs with gaps at the group boundaries.
	for _, tick := range r.Scale.Ticks {
		radius := ctx.OuterRadius - ctx.Width*r.Scale.Norm(tick.Value)

		class := "top etch"
		if tick.Labeled() {
			class = "top etch heavy"
		}

		gap := mmToDeg(radGuideGapMM, radius)
		if gap >= sweep {
			// Sector too narrow for any visible arc at this radius.
			continue
		}

		for g := 0; g < r.Groups; g++ {
			start := float64(g)*sweep + gap/2
			end := float64(g+1)*sweep - gap/2
			nodes = append(nodes, render.Path{D: arcPath(radius, start, end), Class: class})

			if tick.Labeled() {
				// Value label in the boundary gap, one per group.
				lx, ly := point(float64(g)*sweep, radius)
				nodes = append(nodes, render.Text{
					X: lx, Y: ly, Body: tick.Label, Class: "top etch",
					Size: 2.2, Rotate: float64(g) * sweep,
				})
			}
		}
	}

	// Slider channels and group index labels.
	for g := 0; g < r.Groups; g++ {
		groupStart := float64(g) * sweep
		var children []render.Node

		for j := 1; j <= r.SlidersPerGroup; j++ {
			angle := groupStart + sweep*float64(j)/float64(r.SlidersPerGroup+1)

			x1, y1 := point(angle, chanInner)
			x2, y2 := point(angle, chanOuter)
			children = append(children,
				render.Line{X1: x1, Y1: y1, X2: x2, Y2: y2,
					Class: "top slider", Width: radGrooveWidthMM, Round: true})

			bodyInner := chanInner - radBodyExtMM
			if bodyInner < 0 {
				bodyInner = 0
			}
			bx1, by1 := point(angle, bodyInner)
			bx2, by2 := point(angle, chanOuter+radBodyExtMM)
			children = append(children,
				render.Line{X1: bx1, Y1: by1, X2: bx2, Y2: by2,
					Class: "bottom slider", Width: radBodyWidthMM, Round: true})
		}

		// Group index label on the boundary, centered in the ring.
		lx, ly := point(groupStart, ctx.OuterRadius-ctx.Width/2)
		children = append(children, render.Text{
			X: lx, Y: ly,
			Body:  fmt.Sprintf("%s%d", layerLetter(ctx.Layer), g+1),
			Class: "top etch heavy", Size: 3.5, Rotate: groupStart,
		})

		nodes = append(nodes, render.Group{Class: "group", Children: children})
	}

	return nodes
}
