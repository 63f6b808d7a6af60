package plan

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/board"
)

func testDocumentWith(t *testing.T, topoOpts board.TopologyOptions) Document {
	t.Helper()
	rings, err := board.FromTopology(3, 2, 1, topoOpts)
	if err != nil {
		t.Fatalf("FromTopology: %v", err)
	}
	p, err := board.Layout(board.Config{DiameterMM: 400, CenterDiameterMM: 60, PaddingMM: 2}, rings)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return FromPlan(Topology{NInput: 3, NHidden: 2, NOutput: 1}, topoOpts, p)
}

func testDocument(t *testing.T) Document {
	t.Helper()
	return testDocumentWith(t, board.TopologyOptions{})
}

func TestFromPlan(t *testing.T) {
	doc := testDocument(t)

	if len(doc.Rings) != 8 {
		t.Fatalf("rings = %d, want 8", len(doc.Rings))
	}
	if doc.Rings[0].Kind != board.KindRule || doc.Rings[0].Name != "log stator" {
		t.Errorf("outermost ring = %s %q, want rule \"log stator\"", doc.Rings[0].Kind, doc.Rings[0].Name)
	}
	if len(doc.Channels) != 1 {
		t.Errorf("channels = %d, want 1", len(doc.Channels))
	}
	if len(doc.Fasteners) != 4 {
		t.Errorf("fasteners = %d, want 4", len(doc.Fasteners))
	}
}

func TestRoundTrip(t *testing.T) {
	doc := testDocument(t)
	doc.Name = "xor-demo"

	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Name != doc.Name {
		t.Errorf("Name = %q, want %q", got.Name, doc.Name)
	}
	if got.Topology != doc.Topology {
		t.Errorf("Topology = %+v, want %+v", got.Topology, doc.Topology)
	}
	if len(got.Rings) != len(doc.Rings) {
		t.Fatalf("rings = %d, want %d", len(got.Rings), len(doc.Rings))
	}
	for i := range got.Rings {
		if got.Rings[i] != doc.Rings[i] {
			t.Errorf("ring %d = %+v, want %+v", i, got.Rings[i], doc.Rings[i])
		}
	}
}

func TestRebuildMatchesOriginal(t *testing.T) {
	doc := testDocument(t)

	rings, rebuilt, err := doc.Rebuild()
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if len(rings) != len(doc.Rings) {
		t.Fatalf("rebuilt rings = %d, want %d", len(rings), len(doc.Rings))
	}
	for i, placement := range rebuilt.Placements {
		if placement.Ctx.OuterRadius != doc.Rings[i].OuterRadiusMM {
			t.Errorf("ring %d: outer radius %.3f, want %.3f",
				i, placement.Ctx.OuterRadius, doc.Rings[i].OuterRadiusMM)
		}
		if placement.Ctx.Width != doc.Rings[i].WidthMM {
			t.Errorf("ring %d: width %.3f, want %.3f", i, placement.Ctx.Width, doc.Rings[i].WidthMM)
		}
	}
}

func TestRebuildKeepsScaleOptions(t *testing.T) {
	doc := testDocumentWith(t, board.TopologyOptions{
		RuleWidthMM: 20,
		ClampMax:    decimal.NewFromInt(4),
		ClampDelta:  decimal.RequireFromString("0.5"),
	})

	// Round-trip through JSON first, the way the cache stores documents.
	data, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	doc, err = Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	rings, rebuilt, err := doc.Rebuild()
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	rule, ok := rings[0].(board.Rule)
	if !ok {
		t.Fatalf("outermost ring is %T, want Rule", rings[0])
	}
	if rule.WidthMM != 20 {
		t.Errorf("rule width = %.1f, want the recorded 20.0", rule.WidthMM)
	}
	if got := rebuilt.Placements[0].Ctx.Width; got != doc.Rings[0].WidthMM {
		t.Errorf("rebuilt width %.3f, want stored %.3f", got, doc.Rings[0].WidthMM)
	}

	clamp, ok := rings[len(rings)-1].(board.Rule)
	if !ok {
		t.Fatalf("innermost ring is %T, want Rule", rings[len(rings)-1])
	}
	if max := clamp.Outer.Max(); !max.Equal(decimal.NewFromInt(4)) {
		t.Errorf("clamp scale max = %s, want the recorded 4", max)
	}
}

func TestScalesRejectsMalformedClamp(t *testing.T) {
	doc := testDocument(t)
	doc.Scales.ClampMax = "not-a-number"

	if _, _, err := doc.Rebuild(); err == nil {
		t.Fatal("expected error for malformed clamp_max")
	}
}
