package rings

import (
	"fmt"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/render"
)

const (
	// azBaseOffsetMM is the physical arc length reserved at each sector
	// end for the boundary value labels. Converting it at the channel
	// radius means larger rings need proportionally less angular padding
	// for the same label size.
	azBaseOffsetMM = 5.0

	// azPadFrac is the additional fixed fraction of the sector width
	// added to the padding on each side.
	azPadFrac = 0.04

	// azPadMaxFrac caps the per-side padding at a fraction of the sector,
	// leaving at least a fifth of the sector as channel. Without the cap
	// the fixed label offset eats the whole sector once sliders get
	// numerous enough, and arcPath requires end > start.
	azPadMaxFrac = 0.4

	// Channel widths: the visible groove on the top face and the wider
	// captive-body channel routed into the reverse face.
	azGrooveWidthMM = 2.0
	azBodyWidthMM   = 6.0

	// azBodyExtMM extends the bottom channel past the groove at both ends
	// so the slider body stays captive at full deflection.
	azBodyExtMM = 4.0

	tickLenMM = 2.5
)

// renderAzimuthal divides the ring into one equal sector per slider. Each
// sector carries an arc-shaped channel (top groove plus extended bottom
// body), the layer scale re-projected onto the sector's angular window,
// and an index label identifying the unit.
func renderAzimuthal(r board.Azimuthal, ctx board.Context) []render.Node {
	rMid := ctx.OuterRadius - ctx.Width/2
	sector := 360.0 / float64(r.Sliders)
	pad := mmToDeg(azBaseOffsetMM, rMid) + sector*azPadFrac
	if limit := sector * azPadMaxFrac; pad > limit {
		pad = limit
	}

	scaleTicks := r.Scale.Ticks
	theta0 := scaleTicks[0].Angle
	thetaSpan := r.Scale.AngleSpan()

	var nodes []render.Node
	for i := 0; i < r.Sliders; i++ {
		start := float64(i) * sector
		chanStart := start + pad
		chanEnd := start + sector - pad

		children := []render.Node{
			// Visible groove on the top face.
			render.Path{
				D:     arcPath(rMid, chanStart, chanEnd),
				Class: "top slider", Width: azGrooveWidthMM, Round: true,
			},
			// Captive slider body on the reverse face, extended past the
			// groove at both ends.
			render.Path{
				D: arcPath(rMid,
					chanStart-mmToDeg(azBodyExtMM, rMid),
					chanEnd+mmToDeg(azBodyExtMM, rMid)),
				Class: "bottom slider", Width: azBodyWidthMM, Round: true,
			},
		}

		// Re-project the scale onto [chanStart, chanEnd].
		for _, tick := range scaleTicks {
			frac := 0.0
			if thetaSpan != 0 {
				frac = (tick.Angle - theta0) / thetaSpan
			}
			angle := chanStart + frac*(chanEnd-chanStart)

			class := "top etch"
			if tick.Labeled() {
				class = "top etch heavy"
			}
			tickInner := rMid + azBodyWidthMM/2
			x1, y1 := point(angle, tickInner)
			x2, y2 := point(angle, tickInner+tickLenMM)
			children = append(children, render.Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Class: class})

			if tick.Labeled() {
				lx, ly := point(angle, tickInner+tickLenMM+2)
				children = append(children, render.Text{
					X: lx, Y: ly, Body: tick.Label, Class: "top etch",
					Size: 2.5, Rotate: angle,
				})
			}
		}

		// Unit index label, centered in the sector below the channel.
		mid := start + sector/2
		ix, iy := point(mid, rMid-azBodyWidthMM/2-3)
		children = append(children, render.Text{
			X: ix, Y: iy,
			Body:  fmt.Sprintf("%s%d", layerLetter(ctx.Layer), i+1),
			Class: "top etch heavy", Size: 3.5, Rotate: mid,
		})

		nodes = append(nodes, render.Group{Class: "sector", Children: children})
	}

	return nodes
}
