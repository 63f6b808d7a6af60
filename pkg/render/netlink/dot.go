package netlink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/ringforge/ringforge/pkg/plan"
	"github.com/ringforge/ringforge/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the layer name in unit labels.
	// When false, only the unit index is shown.
	Detailed bool
}

// layer is one rank of units in the diagram.
type layer struct {
	name   string
	prefix string
	count  int
}

// ToDOT converts a network topology to Graphviz DOT format for node-link
// visualization. The resulting DOT string can be rendered using [RenderSVG],
// [RenderPDF], or [RenderPNG].
//
// Units are fully connected between consecutive layers, matching the slider
// groups the board gives each weight matrix.
func ToDOT(topo plan.Topology, opts Options) string {
	layers := []layer{
		{name: "input", prefix: "x", count: topo.NInput},
		{name: "hidden", prefix: "h", count: topo.NHidden},
		{name: "output", prefix: "y", count: topo.NOutput},
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=24, margin=\"0.1,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, l := range layers {
		fmt.Fprintf(&buf, "  { rank=same;")
		for i := 1; i <= l.count; i++ {
			fmt.Fprintf(&buf, " %q;", unitID(l, i))
		}
		buf.WriteString(" }\n")
		for i := 1; i <= l.count; i++ {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", unitID(l, i), unitLabel(l, i, opts.Detailed))
		}
	}

	buf.WriteString("\n")
	for li := 0; li < len(layers)-1; li++ {
		from, to := layers[li], layers[li+1]
		for i := 1; i <= from.count; i++ {
			for j := 1; j <= to.count; j++ {
				fmt.Fprintf(&buf, "  %q -> %q;\n", unitID(from, i), unitID(to, j))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func unitID(l layer, i int) string {
	return fmt.Sprintf("%s%d", l.prefix, i)
}

func unitLabel(l layer, i int, detailed bool) string {
	if !detailed {
		return unitID(l, i)
	}
	return fmt.Sprintf("%s%d\n%s", l.prefix, i, l.name)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
