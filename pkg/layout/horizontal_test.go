package layout

import (
	"testing"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// testConfig pins the node box to 50 units high with a 30 unit sibling gap,
// matching the worked examples in the package tests.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.NodeHeight = 50
	cfg.VSpacing = 30
	return cfg
}

func buildTree(t *testing.T, nodes []mindmap.Node) *mindmap.Tree {
	t.Helper()
	tree, err := mindmap.Build(nodes)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tree
}

// twoChildrenThreeLeaves is the canonical measuring tree: a root with two
// children, each carrying three leaves.
func twoChildrenThreeLeaves(t *testing.T) *mindmap.Tree {
	return buildTree(t, []mindmap.Node{
		{ID: "root"},
		{ID: "c1", ParentID: "root"},
		{ID: "c2", ParentID: "root"},
		{ID: "c1a", ParentID: "c1"},
		{ID: "c1b", ParentID: "c1"},
		{ID: "c1c", ParentID: "c1"},
		{ID: "c2a", ParentID: "c2"},
		{ID: "c2b", ParentID: "c2"},
		{ID: "c2c", ParentID: "c2"},
	})
}

func TestHorizontal_SubtreeSpans(t *testing.T) {
	tree := twoChildrenThreeLeaves(t)
	cfg := testConfig()
	m := MeasureSpans(tree, func(string) float64 { return cfg.NodeHeight }, cfg.VSpacing)

	// Each child: 3 leaves x 50 + 2 gaps x 30 = 210.
	if got := m.Span("c1"); got != 210 {
		t.Errorf("Span(c1) = %v, want 210", got)
	}
	// Root: 2 x 210 + 1 gap x 30 = 450.
	if got := m.Span("root"); got != 450 {
		t.Errorf("Span(root) = %v, want 450", got)
	}
	if got := m.Span("c2c"); got != 50 {
		t.Errorf("Span(c2c) = %v, want 50", got)
	}
}

func TestHorizontal_ParentCentering(t *testing.T) {
	tree := twoChildrenThreeLeaves(t)
	res, err := Compute(tree, ModeHorizontal, testConfig())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	p := res.Positions
	for parent, kids := range map[string][]string{
		"root": {"c1", "c2"},
		"c1":   {"c1a", "c1b", "c1c"},
		"c2":   {"c2a", "c2b", "c2c"},
	} {
		first, last := p[kids[0]], p[kids[len(kids)-1]]
		want := (first.Y + last.Y) / 2
		if got := p[parent].Y; got != want {
			t.Errorf("y(%s) = %v, want midpoint %v of first/last child", parent, got, want)
		}
	}
}

func TestHorizontal_ColumnAlignment(t *testing.T) {
	tree := buildTree(t, []mindmap.Node{
		{ID: "r", Content: "wide root node content"},
		{ID: "a", ParentID: "r", Content: "a"},
		{ID: "b", ParentID: "r", Content: "a much longer sibling"},
		{ID: "a1", ParentID: "a"},
		{ID: "b1", ParentID: "b"},
	})
	res, err := Compute(tree, ModeHorizontal, testConfig())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	p := res.Positions
	if p["a"].X != p["b"].X {
		t.Errorf("level 1 columns differ: x(a)=%v x(b)=%v", p["a"].X, p["b"].X)
	}
	if p["a1"].X != p["b1"].X {
		t.Errorf("level 2 columns differ: x(a1)=%v x(b1)=%v", p["a1"].X, p["b1"].X)
	}
	if p["a"].X <= p["r"].X {
		t.Errorf("level 1 not right of level 0: x(a)=%v x(r)=%v", p["a"].X, p["r"].X)
	}
}

func TestHorizontal_SiblingBandsDisjoint(t *testing.T) {
	tree := twoChildrenThreeLeaves(t)
	cfg := testConfig()
	res, err := Compute(tree, ModeHorizontal, cfg)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	m := MeasureSpans(tree, func(string) float64 { return cfg.NodeHeight }, cfg.VSpacing)

	// c1's band is [top(c1a), top(c1a)+span) and must end before c2's starts.
	c1End := res.Positions["c1a"].Y + m.Span("c1")
	c2Start := res.Positions["c2a"].Y
	if c1End > c2Start {
		t.Errorf("sibling bands intersect: c1 ends at %v, c2 starts at %v", c1End, c2Start)
	}
}

func TestHorizontal_LeafStack(t *testing.T) {
	tree := twoChildrenThreeLeaves(t)
	cfg := testConfig()
	res, err := Compute(tree, ModeHorizontal, cfg)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	p := res.Positions
	step := cfg.NodeHeight + cfg.VSpacing
	if got := p["c1b"].Y - p["c1a"].Y; got != step {
		t.Errorf("leaf step = %v, want %v", got, step)
	}
	if got := p["c1c"].Y - p["c1b"].Y; got != step {
		t.Errorf("leaf step = %v, want %v", got, step)
	}
}

func TestHorizontal_MultipleRootsStacked(t *testing.T) {
	tree := buildTree(t, []mindmap.Node{
		{ID: "r1"},
		{ID: "r1a", ParentID: "r1"},
		{ID: "r2"},
	})
	cfg := testConfig()
	res, err := Compute(tree, ModeHorizontal, cfg)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if res.Positions["r2"].Y <= res.Positions["r1"].Y {
		t.Errorf("second root not below first: y(r1)=%v y(r2)=%v",
			res.Positions["r1"].Y, res.Positions["r2"].Y)
	}
	if res.Positions["r1"].X != res.Positions["r2"].X {
		t.Errorf("roots not column aligned: x(r1)=%v x(r2)=%v",
			res.Positions["r1"].X, res.Positions["r2"].X)
	}
}

func TestHorizontal_CollapsedSubtreeExcluded(t *testing.T) {
	tree := buildTree(t, []mindmap.Node{
		{ID: "r"},
		{ID: "a", ParentID: "r", Collapsed: true},
		{ID: "a1", ParentID: "a"},
		{ID: "b", ParentID: "r"},
	})
	res, err := Compute(tree, ModeHorizontal, testConfig())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if _, ok := res.Positions["a1"]; ok {
		t.Error("hidden node a1 received a position")
	}
	if _, ok := res.Positions["a"]; !ok {
		t.Error("collapsed node a itself missing from positions")
	}
}

func TestCompute_EmptyTree(t *testing.T) {
	tree := buildTree(t, nil)
	res, err := Compute(tree, ModeHorizontal, testConfig())
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if len(res.Positions) != 0 {
		t.Errorf("Positions = %v, want empty", res.Positions)
	}
	if res.Bounds != (Bounds{}) {
		t.Errorf("Bounds = %+v, want zero", res.Bounds)
	}
}

func TestCompute_UnknownMode(t *testing.T) {
	tree := buildTree(t, []mindmap.Node{{ID: "r"}})
	if _, err := Compute(tree, Mode("spiral"), testConfig()); err == nil {
		t.Error("Compute() with unknown mode returned nil error")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	tree := twoChildrenThreeLeaves(t)
	cfg := testConfig()

	for _, mode := range []Mode{ModeHorizontal, ModeVertical, ModeRadial, ModeFishbone} {
		a, err := Compute(tree, mode, cfg)
		if err != nil {
			t.Fatalf("Compute(%s) error = %v", mode, err)
		}
		b, err := Compute(tree, mode, cfg)
		if err != nil {
			t.Fatalf("Compute(%s) error = %v", mode, err)
		}
		if len(a.Positions) != len(b.Positions) {
			t.Fatalf("%s: position counts differ", mode)
		}
		for id, p := range a.Positions {
			if b.Positions[id] != p {
				t.Errorf("%s: position of %s differs between runs: %+v vs %+v",
					mode, id, p, b.Positions[id])
			}
		}
		if a.Bounds != b.Bounds {
			t.Errorf("%s: bounds differ between runs", mode)
		}
	}
}

func TestCompute_CoversAllVisibleNodes(t *testing.T) {
	tree := buildTree(t, []mindmap.Node{
		{ID: "r1"},
		{ID: "a", ParentID: "r1"},
		{ID: "a1", ParentID: "a"},
		{ID: "r2"},
		{ID: "b", ParentID: "r2", Collapsed: true},
		{ID: "b1", ParentID: "b"},
	})
	cfg := testConfig()

	for _, mode := range []Mode{ModeHorizontal, ModeVertical, ModeRadial, ModeFishbone} {
		res, err := Compute(tree, mode, cfg)
		if err != nil {
			t.Fatalf("Compute(%s) error = %v", mode, err)
		}
		for _, id := range tree.VisibleNodes() {
			if _, ok := res.Positions[id]; !ok {
				t.Errorf("%s: visible node %s missing from positions", mode, id)
			}
		}
		if _, ok := res.Positions["b1"]; ok {
			t.Errorf("%s: hidden node b1 received a position", mode)
		}
	}
}
