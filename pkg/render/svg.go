package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// docMargin is the fixed margin added around the apparatus on every side,
// in millimetres.
const docMargin = 5.0

// baseStyles colors each fabrication class so a preview distinguishes the
// passes; cutting software keys on the class names, not the colors.
const baseStyles = `
    line, path, circle { fill: none; stroke: #000; stroke-width: 0.25; }
    text { fill: #000; stroke: none; font-family: "ISOCPEUR", "Routed Gothic", sans-serif; }
    .etch { stroke: #0072b2; }
    .etch.heavy { stroke-width: 0.5; }
    .full { stroke: #000; }
    .slider { stroke: #d55e00; }
    .rotating { stroke: #009e73; }
    .debug { stroke: #999; stroke-width: 0.1; stroke-dasharray: 2 2; }`

type document struct {
	layers    []Layer // nil means all production layers
	showDebug bool
}

// DocOption configures SVG document serialization.
type DocOption func(*document)

// WithLayers restricts the visible output to the given fabrication
// layers. Every other known cut class gets a display:none rule, so the
// same tree can be written once per pass without re-rendering.
func WithLayers(layers ...Layer) DocOption {
	return func(d *document) { d.layers = layers }
}

// WithDebug makes debug-classed construction geometry visible. Debug
// nodes are suppressed by default.
func WithDebug() DocOption {
	return func(d *document) { d.showDebug = true }
}

// Document serializes a primitive tree into a complete SVG document. The
// viewBox is the apparatus diameter plus a fixed margin, centered on the
// origin, with millimetre units so the drawing imports into CAM tooling
// at true scale.
func Document(nodes []Node, diameterMM float64, opts ...DocOption) []byte {
	var d document
	for _, opt := range opts {
		opt(&d)
	}

	half := diameterMM/2 + docMargin
	size := 2 * half

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.2fmm" height="%.2fmm">`+"\n",
		-half, -half, size, size, size, size)

	writeStyles(&buf, d)
	for _, n := range nodes {
		writeNode(&buf, n, 1)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeStyles(buf *bytes.Buffer, d document) {
	buf.WriteString("  <style>")
	buf.WriteString(baseStyles)
	for _, l := range CutLayers {
		if d.visible(l) {
			continue
		}
		fmt.Fprintf(buf, "\n    %s { display: none; }", l.selector())
	}
	buf.WriteString("\n  </style>\n")
}

func (d document) visible(l Layer) bool {
	if l.Kind == ClassDebug {
		if d.showDebug {
			return true
		}
		// An explicit layer request may still name debug.
	}
	if d.layers == nil {
		return l.Kind != ClassDebug
	}
	for _, want := range d.layers {
		if want == l {
			return true
		}
	}
	return false
}

func writeNode(buf *bytes.Buffer, n Node, depth int) {
	indent := pad(depth)
	switch n := n.(type) {
	case Line:
		fmt.Fprintf(buf, `%s<line class="%s" x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f"%s/>`+"\n",
			indent, escape(n.Class), n.X1, n.Y1, n.X2, n.Y2, strokeAttrs(n.Width, n.Round))
	case Path:
		fmt.Fprintf(buf, `%s<path class="%s" d="%s"%s/>`+"\n",
			indent, escape(n.Class), n.D, strokeAttrs(n.Width, n.Round))
	case Circle:
		fmt.Fprintf(buf, `%s<circle class="%s" cx="%.3f" cy="%.3f" r="%.3f"%s/>`+"\n",
			indent, escape(n.Class), n.CX, n.CY, n.R, strokeAttrs(n.Width, false))
	case Text:
		anchor := n.Anchor
		if anchor == "" {
			anchor = "middle"
		}
		transform := ""
		if n.Rotate != 0 {
			transform = fmt.Sprintf(` transform="rotate(%.3f %.3f %.3f)"`, n.Rotate, n.X, n.Y)
		}
		fmt.Fprintf(buf,
			`%s<text class="%s" x="%.3f" y="%.3f" font-size="%.2f" text-anchor="%s" dominant-baseline="middle"%s>%s</text>`+"\n",
			indent, escape(n.Class), n.X, n.Y, n.Size, anchor, transform, escape(n.Body))
	case Group:
		attrs := ""
		if n.Class != "" {
			attrs += fmt.Sprintf(` class="%s"`, escape(n.Class))
		}
		if n.Transform != "" {
			attrs += fmt.Sprintf(` transform="%s"`, n.Transform)
		}
		fmt.Fprintf(buf, "%s<g%s>\n", indent, attrs)
		for _, c := range n.Children {
			writeNode(buf, c, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", indent)
	}
}

func strokeAttrs(width float64, round bool) string {
	s := ""
	if width > 0 {
		s += fmt.Sprintf(` stroke-width="%.3f"`, width)
	}
	if round {
		s += ` stroke-linecap="round"`
	}
	return s
}

func pad(depth int) string {
	const spaces = "                "
	n := depth * 2
	if n > len(spaces) {
		n = len(spaces)
	}
	return spaces[:n]
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
