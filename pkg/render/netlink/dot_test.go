package netlink

import (
	"strings"
	"testing"

	"github.com/ringforge/ringforge/pkg/plan"
)

func TestToDOTStructure(t *testing.T) {
	dot := ToDOT(plan.Topology{NInput: 3, NHidden: 2, NOutput: 1}, Options{})

	for _, want := range []string{
		"digraph G {",
		"rankdir=LR",
		`"x1"`, `"x3"`, `"h2"`, `"y1"`,
		`"x1" -> "h1";`,
		`"x3" -> "h2";`,
		`"h2" -> "y1";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	// No edge skips a layer.
	if strings.Contains(dot, `"x1" -> "y1"`) {
		t.Error("inputs should not connect directly to outputs")
	}
}

func TestToDOTEdgeCount(t *testing.T) {
	dot := ToDOT(plan.Topology{NInput: 3, NHidden: 2, NOutput: 1}, Options{})

	// Full connectivity: 3*2 + 2*1 edges.
	if got := strings.Count(dot, "->"); got != 8 {
		t.Errorf("edge count = %d, want 8", got)
	}
}

func TestToDOTDetailedLabels(t *testing.T) {
	plain := ToDOT(plan.Topology{NInput: 1, NHidden: 1, NOutput: 1}, Options{})
	detailed := ToDOT(plan.Topology{NInput: 1, NHidden: 1, NOutput: 1}, Options{Detailed: true})

	if strings.Contains(plain, "hidden") {
		t.Error("plain labels should not include layer names")
	}
	if !strings.Contains(detailed, "hidden") {
		t.Error("detailed labels should include layer names")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100"`) {
		t.Errorf("width not set from viewBox: %s", out)
	}

	// SVG without a viewBox passes through unchanged.
	plain := []byte("<svg>")
	if string(normalizeViewBox(plain)) != "<svg>" {
		t.Error("missing viewBox should pass through")
	}
}
