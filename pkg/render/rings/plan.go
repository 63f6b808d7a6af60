package rings

import (
	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/render"
)

// RenderPlan renders a fully allocated board into one primitive tree:
// every ring at its assigned geometry, the rotating channels and fastener
// holes the allocator placed, the board outline on both faces, and
// debug-classed construction circles marking each ring's edges.
func RenderPlan(p board.Plan) []render.Node {
	radius := p.Radius()

	nodes := []render.Node{
		render.Circle{R: radius, Class: "top full"},
		render.Circle{R: radius, Class: "bottom full"},
	}

	if p.Config.CenterDiameterMM > 0 {
		// Center plate outline; the logo/QR plate is engraved separately.
		nodes = append(nodes, render.Circle{R: p.Config.CenterDiameterMM / 2, Class: "top etch"})
	}

	for _, placement := range p.Placements {
		nodes = append(nodes, render.Group{
			Class:    "ring ring-" + placement.Ring.Kind(),
			Children: Render(placement.Ring, placement.Ctx),
		})

		nodes = append(nodes,
			render.Circle{R: placement.Ctx.OuterRadius, Class: "debug"},
			render.Circle{R: placement.Ctx.InnerRadius(), Class: "debug"},
		)
	}

	// Rotating channels are routed voids: CAM pockets the annulus between
	// the two circles.
	for _, ch := range p.Channels {
		nodes = append(nodes, render.Group{Class: "channel", Children: []render.Node{
			render.Circle{R: ch.OuterRadius, Class: "bottom rotating"},
			render.Circle{R: ch.InnerRadius, Class: "bottom rotating"},
		}})
	}

	for _, f := range p.Fasteners {
		x, y := point(f.Angle, f.Radius)
		nodes = append(nodes,
			render.Circle{CX: x, CY: y, R: f.DiameterMM / 2, Class: "top full"},
			render.Circle{CX: x, CY: y, R: f.DiameterMM / 2, Class: "bottom full"},
		)
	}

	return nodes
}
