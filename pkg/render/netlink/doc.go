// Package netlink renders network topologies as traditional node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// units appear as circles connected by weight edges. It's an alternative to
// the board visualization for inspecting the topology a board implements.
//
// # Usage
//
// Convert a topology to DOT format, then render to SVG:
//
//	dot := netlink.ToDOT(topo, netlink.Options{})
//	svg, err := netlink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := netlink.RenderPDF(dot)
//	png, err := netlink.RenderPNG(dot, 2.0)  // 2x scale
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//   - Customized before rendering
//
// The generated DOT uses left-to-right layout (rankdir=LR) with one rank
// per network layer, so inputs, hidden units, and outputs line up in
// columns the way the board lays them out in concentric rings.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package netlink
