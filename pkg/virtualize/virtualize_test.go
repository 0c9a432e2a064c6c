package virtualize

import (
	"fmt"
	"slices"
	"testing"

	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

func buildTree(t *testing.T, nodes []mindmap.Node) *mindmap.Tree {
	t.Helper()
	tree, err := mindmap.Build(nodes)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tree
}

// wideTree builds a root with fanout children, each with a chain of
// chainLen descendants marching right.
func wideTree(t *testing.T, fanout, chainLen int) *mindmap.Tree {
	t.Helper()
	nodes := []mindmap.Node{{ID: "root"}}
	for i := 0; i < fanout; i++ {
		parent := "root"
		for j := 0; j <= chainLen; j++ {
			id := fmt.Sprintf("n%d_%d", i, j)
			nodes = append(nodes, mindmap.Node{ID: id, ParentID: parent})
			parent = id
		}
	}
	return buildTree(t, nodes)
}

func gridPositions(tree *mindmap.Tree) map[string]layout.Position {
	pos := make(map[string]layout.Position, tree.Len())
	for _, n := range tree.Nodes() {
		d := tree.Depth(n.ID)
		i, _ := tree.Index(n.ID)
		pos[n.ID] = layout.Position{X: float64(d) * 200, Y: float64(i) * 80}
	}
	return pos
}

func TestVirtualize_ThresholdBypass(t *testing.T) {
	tree := wideTree(t, 4, 100) // root + 4*101 = 405 nodes
	pos := gridPositions(tree)
	vp := Viewport{X: 0, Y: 0, Width: 100, Height: 100}

	res := Virtualize(tree, pos, vp, Options{Threshold: 501})
	if !res.Stats.Bypassed {
		t.Error("threshold above node count must bypass culling")
	}
	if res.Stats.Kept != tree.Len() {
		t.Errorf("Kept = %d, want all %d", res.Stats.Kept, tree.Len())
	}
	if !slices.Equal(res.Visible, tree.VisibleNodes()) {
		t.Error("bypass must return the full visible set verbatim")
	}
}

func TestVirtualize_CullsOffscreen(t *testing.T) {
	tree := wideTree(t, 4, 100)
	pos := gridPositions(tree)
	// Viewport covers only the root's region.
	vp := Viewport{X: 0, Y: 0, Width: 150, Height: 150}

	res := Virtualize(tree, pos, vp, Options{Threshold: 100, Padding: -1})
	if res.Stats.Bypassed {
		t.Fatal("culling unexpectedly bypassed")
	}
	if res.Stats.Culled == 0 {
		t.Error("nothing culled with a tiny viewport on a 400-node tree")
	}
	if !slices.Contains(res.Visible, "root") {
		t.Error("root missing from output")
	}
}

func TestVirtualize_RootAlwaysIncluded(t *testing.T) {
	tree := wideTree(t, 4, 100)
	pos := gridPositions(tree)
	// Viewport far away from every node.
	vp := Viewport{X: 1e6, Y: 1e6, Width: 100, Height: 100}

	res := Virtualize(tree, pos, vp, Options{Threshold: 10})
	if !slices.Contains(res.Visible, "root") {
		t.Error("root must be anchored even when fully off-screen")
	}
	if res.Stats.Anchored == 0 {
		t.Error("Stats.Anchored = 0, want at least the root")
	}
}

func TestVirtualize_AncestorChainGuarantee(t *testing.T) {
	tree := wideTree(t, 2, 50)
	pos := gridPositions(tree)

	// Target a node deep in the first chain; its ancestors sit far to
	// the left, outside the viewport.
	target := "n0_40"
	tp := pos[target]
	vp := Viewport{X: tp.X - 10, Y: tp.Y - 10, Width: 20, Height: 20}

	res := Virtualize(tree, pos, vp, Options{Threshold: 10, Padding: -1})
	if !slices.Contains(res.Visible, target) {
		t.Fatalf("intersecting node %s missing from output", target)
	}
	id := target
	for {
		parent, ok := tree.Parent(id)
		if !ok {
			break
		}
		if !slices.Contains(res.Visible, parent) {
			t.Errorf("ancestor %s of visible node %s missing from output", parent, target)
		}
		id = parent
	}
	if res.Stats.Bridged == 0 {
		t.Error("Stats.Bridged = 0, want off-screen ancestors counted")
	}
}

func TestVirtualize_CollapsedDescendantsExcluded(t *testing.T) {
	nodes := []mindmap.Node{{ID: "root"}}
	for i := 0; i < 200; i++ {
		nodes = append(nodes, mindmap.Node{ID: fmt.Sprintf("a%d", i), ParentID: "root"})
	}
	nodes = append(nodes, mindmap.Node{ID: "folded", ParentID: "root", Collapsed: true})
	nodes = append(nodes, mindmap.Node{ID: "hidden", ParentID: "folded"})
	tree := buildTree(t, nodes)

	pos := gridPositions(tree)
	// Put the hidden node squarely inside the viewport.
	pos["hidden"] = layout.Position{X: 10, Y: 10}
	vp := Viewport{X: 0, Y: 0, Width: 500, Height: 500}

	res := Virtualize(tree, pos, vp, Options{Threshold: 10})
	if slices.Contains(res.Visible, "hidden") {
		t.Error("descendant of collapsed node leaked into output despite intersecting")
	}
	if !slices.Contains(res.Visible, "folded") {
		t.Error("collapsed node itself should still be eligible")
	}
}

func TestVirtualize_Deterministic(t *testing.T) {
	tree := wideTree(t, 3, 80)
	pos := gridPositions(tree)
	vp := Viewport{X: 300, Y: 300, Width: 800, Height: 600}
	opts := Options{Threshold: 50}

	first := Virtualize(tree, pos, vp, opts)
	for i := 0; i < 5; i++ {
		again := Virtualize(tree, pos, vp, opts)
		if !slices.Equal(again.Visible, first.Visible) {
			t.Fatalf("call %d diverged from first call", i+2)
		}
	}
}

func TestVirtualize_StatsConsistent(t *testing.T) {
	tree := wideTree(t, 4, 60)
	pos := gridPositions(tree)
	vp := Viewport{X: 0, Y: 0, Width: 400, Height: 400}

	res := Virtualize(tree, pos, vp, Options{Threshold: 20})
	st := res.Stats
	if st.Kept != len(res.Visible) {
		t.Errorf("Kept = %d, len(Visible) = %d", st.Kept, len(res.Visible))
	}
	if st.Kept+st.Culled != st.Total {
		t.Errorf("Kept+Culled = %d, Total = %d", st.Kept+st.Culled, st.Total)
	}
	if got := st.Intersect + st.Bridged + st.Anchored; got < st.Kept {
		t.Errorf("kept nodes unaccounted for: %d categorized of %d", got, st.Kept)
	}
}

func TestVirtualize_DeepChainNoStackGrowth(t *testing.T) {
	const depth = 5000
	nodes := make([]mindmap.Node, depth)
	nodes[0] = mindmap.Node{ID: "c0"}
	for i := 1; i < depth; i++ {
		nodes[i] = mindmap.Node{
			ID:       fmt.Sprintf("c%d", i),
			ParentID: fmt.Sprintf("c%d", i-1),
		}
	}
	tree := buildTree(t, nodes)

	pos := make(map[string]layout.Position, depth)
	for i := 0; i < depth; i++ {
		pos[fmt.Sprintf("c%d", i)] = layout.Position{X: float64(i) * 50, Y: 0}
	}
	// Viewport over the tail: the whole ancestor chain must be bridged in.
	vp := Viewport{X: float64(depth-2) * 50, Y: -50, Width: 200, Height: 200}

	res := Virtualize(tree, pos, vp, Options{Threshold: 10, Padding: -1})
	if res.Stats.Kept != depth {
		t.Errorf("Kept = %d, want full chain %d", res.Stats.Kept, depth)
	}
}
