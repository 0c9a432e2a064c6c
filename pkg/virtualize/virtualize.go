// Package virtualize selects the subset of mind-map nodes worth
// materializing for rendering, based on viewport intersection and
// ancestor/descendant visibility rules.
//
// A single call runs in O(n) over the visible node count: the
// has-intersecting-descendant test is resolved bottom-up over the
// tree's pre-order, so no branch is scanned twice.
package virtualize

import (
	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// DefaultThreshold is the visible node count below which culling is
// skipped entirely. Small trees are cheap to paint in full, and the
// culling bookkeeping would cost more than it saves.
const DefaultThreshold = 100

// DefaultPadding is the margin, in canvas units, by which the viewport
// is expanded before intersection testing. It keeps nodes from popping
// in at the exact screen edge during panning.
const DefaultPadding = 100.0

// Viewport is the visible canvas region in layout coordinates.
type Viewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Options tunes virtualization behavior.
type Options struct {
	// Threshold is the visible node count at or below which all nodes
	// are returned unculled. Zero selects DefaultThreshold.
	Threshold int

	// Padding expands the viewport on all sides before intersection
	// testing. Zero selects DefaultPadding; use a negative value for a
	// strict viewport.
	Padding float64

	// Config supplies node sizing for bounding boxes. The zero value
	// selects layout.DefaultConfig().
	Config layout.Config
}

func (o *Options) setDefaults() {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Config == (layout.Config{}) {
		o.Config = layout.DefaultConfig()
	}
}

// Stats reports what a virtualization pass did.
type Stats struct {
	Total     int  `json:"total"`     // visible nodes considered
	Kept      int  `json:"kept"`      // nodes in the output set
	Culled    int  `json:"culled"`    // nodes dropped
	Bypassed  bool `json:"bypassed"`  // true when the threshold short-circuited culling
	Anchored  int  `json:"anchored"`  // roots kept regardless of intersection
	Bridged   int  `json:"bridged"`   // off-screen nodes kept for a visible descendant
	Intersect int  `json:"intersect"` // nodes kept by direct viewport intersection
}

// Result is the outcome of one virtualization pass.
type Result struct {
	// Visible lists the kept node IDs in the tree's visible pre-order.
	Visible []string `json:"visible"`
	Stats   Stats    `json:"stats"`
}

// Virtualize computes the render set for tree given computed positions
// and the current viewport. Nodes hidden under a collapsed ancestor
// never appear in the output, regardless of geometry. The output is a
// pure function of its inputs: calling twice with identical arguments
// yields the identical set.
func Virtualize(t *mindmap.Tree, positions map[string]layout.Position, vp Viewport, opts Options) Result {
	opts.setDefaults()

	order := t.VisibleNodes()
	total := len(order)
	if total <= opts.Threshold {
		return Result{
			Visible: order,
			Stats:   Stats{Total: total, Kept: total, Bypassed: true},
		}
	}

	pad := opts.Padding
	minX, minY := vp.X-pad, vp.Y-pad
	maxX, maxY := vp.X+vp.Width+pad, vp.Y+vp.Height+pad

	intersects := func(id string) bool {
		pos, ok := positions[id]
		if !ok {
			return false
		}
		n, ok := t.Node(id)
		if !ok {
			return false
		}
		w := opts.Config.EstimateNodeWidth(n.Content)
		return pos.X < maxX && pos.X+w > minX &&
			pos.Y < maxY && pos.Y+opts.Config.NodeHeight > minY
	}

	// keep flags are indexed by position in the visible pre-order. A
	// reverse sweep sees every child before its parent, so "any visible
	// descendant intersects" propagates upward in one pass per node.
	keep := make([]bool, total)
	direct := make([]bool, total)
	slot := make(map[string]int, total)
	for i, id := range order {
		slot[id] = i
	}

	st := Stats{Total: total}
	for i := total - 1; i >= 0; i-- {
		id := order[i]
		if intersects(id) {
			keep[i] = true
			direct[i] = true
		}
		if !keep[i] {
			continue
		}
		if parent, ok := t.Parent(id); ok {
			keep[slot[parent]] = true
		}
	}

	visible := make([]string, 0, total)
	for i, id := range order {
		_, hasParent := t.Parent(id)
		if !hasParent {
			keep[i] = true
		}
		if !keep[i] {
			continue
		}
		visible = append(visible, id)
		switch {
		case direct[i]:
			st.Intersect++
		case hasParent:
			st.Bridged++
		default:
			st.Anchored++
		}
	}
	st.Kept = len(visible)
	st.Culled = total - st.Kept
	return Result{Visible: visible, Stats: st}
}
