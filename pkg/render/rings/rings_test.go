package rings

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ringforge/ringforge/pkg/board"
	"github.com/ringforge/ringforge/pkg/render"
	"github.com/ringforge/ringforge/pkg/scale"
)

func testScale(t *testing.T) scale.Scale {
	t.Helper()
	s, err := scale.Linear(
		decimal.NewFromInt(-2), decimal.NewFromInt(2),
		decimal.RequireFromString("0.5"), decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("Linear: %v", err)
	}
	return s
}

// walk visits every node in the tree, descending into groups.
func walk(nodes []render.Node, visit func(render.Node)) {
	for _, n := range nodes {
		visit(n)
		if g, ok := n.(render.Group); ok {
			walk(g.Children, visit)
		}
	}
}

// countClass counts non-group nodes whose class list contains all the
// given tokens.
func countClass(nodes []render.Node, tokens ...string) int {
	count := 0
	walk(nodes, func(n render.Node) {
		var class string
		switch n := n.(type) {
		case render.Line:
			class = n.Class
		case render.Path:
			class = n.Class
		case render.Circle:
			class = n.Class
		case render.Text:
			class = n.Class
		default:
			return
		}
		have := strings.Fields(class)
		for _, want := range tokens {
			found := false
			for _, tok := range have {
				if tok == want {
					found = true
					break
				}
			}
			if !found {
				return
			}
		}
		count++
	})
	return count
}

func TestAzimuthalSliderCountFidelity(t *testing.T) {
	for _, sliders := range []int{1, 3, 8} {
		r := board.Azimuthal{WidthMM: 18, Scale: testScale(t), Sliders: sliders}
		ctx := board.Context{OuterRadius: 150, Width: 18, Layer: 0}
		nodes := Render(r, ctx)

		if got := countClass(nodes, "top", "slider"); got != sliders {
			t.Errorf("sliders=%d: top slider primitives = %d, want %d", sliders, got, sliders)
		}
		if got := countClass(nodes, "bottom", "slider"); got != sliders {
			t.Errorf("sliders=%d: bottom slider primitives = %d, want %d", sliders, got, sliders)
		}
	}
}

func TestAzimuthalChannelsSurviveCrowding(t *testing.T) {
	// A small ring crowded with sliders: the fixed label offset alone
	// exceeds half the sector, so the padding cap must keep every channel
	// a forward arc inside its own sector.
	r := board.Azimuthal{WidthMM: 18, Scale: testScale(t), Sliders: 24}
	ctx := board.Context{OuterRadius: 40, Width: 18, Layer: 0}

	var grooves []render.Path
	walk(Render(r, ctx), func(n render.Node) {
		p, ok := n.(render.Path)
		if ok && strings.Contains(p.Class, "top slider") {
			grooves = append(grooves, p)
		}
	})
	if len(grooves) != r.Sliders {
		t.Fatalf("groove count = %d, want %d", len(grooves), r.Sliders)
	}

	sector := 360.0 / float64(r.Sliders)
	for i, g := range grooves {
		var x1, y1, rx, ry, x2, y2 float64
		var large int
		if _, err := fmt.Sscanf(g.D, "M %f %f A %f %f 0 %d 1 %f %f",
			&x1, &y1, &rx, &ry, &large, &x2, &y2); err != nil {
			t.Fatalf("groove %d: unparseable path %q: %v", i, g.D, err)
		}
		start := math.Mod(math.Atan2(x1, -y1)*180/math.Pi+360, 360)
		end := math.Mod(math.Atan2(x2, -y2)*180/math.Pi+360, 360)
		span := math.Mod(end-start+360, 360)
		if span <= 0 || span >= sector {
			t.Errorf("groove %d spans %.3f°, want a forward arc inside its %.3f° sector", i, span, sector)
		}
	}
}

func TestRadialSliderCountFidelity(t *testing.T) {
	tests := []struct{ groups, perGroup int }{
		{1, 2}, {2, 3}, {4, 4},
	}
	for _, tt := range tests {
		r := board.Radial{Scale: testScale(t), Groups: tt.groups, SlidersPerGroup: tt.perGroup}
		ctx := board.Context{OuterRadius: 120, Width: 30, Layer: 1}
		nodes := Render(r, ctx)

		want := tt.groups * tt.perGroup
		if got := countClass(nodes, "top", "slider"); got != want {
			t.Errorf("(%d,%d): top slider primitives = %d, want %d", tt.groups, tt.perGroup, got, want)
		}
	}
}

func TestRadialSlidersAvoidGroupBoundaries(t *testing.T) {
	// With SlidersPerGroup+1 divisions, no channel may sit on a group
	// boundary angle.
	r := board.Radial{Scale: testScale(t), Groups: 4, SlidersPerGroup: 3}
	ctx := board.Context{OuterRadius: 120, Width: 30, Layer: 1}

	sweep := 360.0 / float64(r.Groups)
	var channels []render.Line
	walk(Render(r, ctx), func(n render.Node) {
		l, ok := n.(render.Line)
		if ok && strings.Contains(l.Class, "slider") {
			channels = append(channels, l)
		}
	})

	for _, l := range channels {
		angle := math.Mod(math.Atan2(l.X2, -l.Y2)*180/math.Pi+360, 360)
		remainder := math.Mod(angle, sweep)
		if remainder < 1e-6 || sweep-remainder < 1e-6 {
			t.Errorf("slider channel at %.3f° falls on a group boundary", angle)
		}
	}
}

func TestRuleRingClosesWithFullCircle(t *testing.T) {
	r := board.Rule{Name: "log stator", WidthMM: 12, Outer: scale.Log()}
	ctx := board.Context{OuterRadius: 200, Width: 12}
	nodes := Render(r, ctx)

	if got := countClass(nodes, "top", "full"); got != 1 {
		t.Errorf("top full circles = %d, want 1", got)
	}

	// One tick line per scale tick.
	if got := countClass(nodes, "top", "etch"); got < r.Outer.Len() {
		t.Errorf("etch primitives = %d, want at least %d tick lines", got, r.Outer.Len())
	}
}

func TestRenderIdempotence(t *testing.T) {
	r := board.Azimuthal{WidthMM: 18, Scale: testScale(t), Sliders: 4}
	ctx := board.Context{OuterRadius: 150, Width: 18, Layer: 2}

	first := Render(r, ctx)
	second := Render(r, ctx)
	if !reflect.DeepEqual(first, second) {
		t.Error("rendering twice with the same context must yield identical trees")
	}
}

func TestRenderWithoutContextPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("rendering without an assigned context must panic")
		}
	}()
	Render(board.Azimuthal{WidthMM: 18, Scale: testScale(t), Sliders: 2}, board.Context{})
}

func TestRenderPlan(t *testing.T) {
	rings, err := board.FromTopology(3, 2, 1, board.TopologyOptions{})
	if err != nil {
		t.Fatalf("FromTopology: %v", err)
	}
	plan, err := board.Layout(board.Config{DiameterMM: 400, CenterDiameterMM: 60, PaddingMM: 2}, rings)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}

	nodes := RenderPlan(plan)

	// Board outline on both faces.
	if got := countClass(nodes, "top", "full"); got < 1 {
		t.Errorf("top full primitives = %d, want at least the outline", got)
	}
	if got := countClass(nodes, "bottom", "full"); got < 1 {
		t.Errorf("bottom full primitives = %d, want at least the outline", got)
	}

	// One rotating channel pair from the log stator/rotor gap.
	if got := countClass(nodes, "bottom", "rotating"); got != 2 {
		t.Errorf("bottom rotating circles = %d, want 2", got)
	}

	// Debug edge circles: two per ring.
	if got := countClass(nodes, "debug"); got != 2*len(plan.Placements) {
		t.Errorf("debug circles = %d, want %d", got, 2*len(plan.Placements))
	}

	// Top full cuts: the outline, one closing circle per rule ring, and
	// the fastener holes.
	ruleRings := 0
	for _, p := range plan.Placements {
		if _, ok := p.Ring.(board.Rule); ok {
			ruleRings++
		}
	}
	if got, want := countClass(nodes, "top", "full"), 1+ruleRings+len(plan.Fasteners); got != want {
		t.Errorf("top full primitives = %d, want %d", got, want)
	}
}
