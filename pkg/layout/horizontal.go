package layout

import "github.com/matzehuels/mindgrid/pkg/mindmap"

// Horizontal is the default strategy: depth grows left-to-right along x,
// siblings stack top-to-bottom along y.
//
// Every node at the same depth shares one x column. Column positions
// accumulate the widest estimated node per depth plus the horizontal
// spacing, so deep columns shift right only as far as their widest
// ancestor column requires.
//
// Vertically each subtree is allocated a contiguous band equal to its
// measured span. Children occupy consecutive sub-bands; a parent sits at
// the midpoint of its first and last child, and a leaf sits at the top of
// its band. Multiple roots stack top-to-bottom with one sibling gap
// between their bands.
type Horizontal struct{}

// Name returns the mode string for this strategy.
func (Horizontal) Name() string { return string(ModeHorizontal) }

// Layout computes positions for all visible nodes.
func (Horizontal) Layout(t *mindmap.Tree, cfg Config) Result {
	widths := visibleWidths(t, cfg)
	levelX := columnOffsets(t, widths, cfg.HSpacing)
	metrics := MeasureSpans(t, func(string) float64 { return cfg.NodeHeight }, cfg.VSpacing)

	bands := allocateBands(t, metrics, cfg.VSpacing)

	positions := make(map[string]Position, len(bands))
	// Children-before-parents order: a parent's y is derived from child
	// positions that are already final.
	for _, id := range metrics.Order() {
		idx, _ := t.Index(id)
		pos := Position{X: levelX[t.Depth(id)]}
		if kids := t.Children(id); len(kids) == 0 {
			pos.Y = bands[idx]
		} else {
			first := positions[kids[0]]
			last := positions[kids[len(kids)-1]]
			pos.Y = (first.Y + last.Y) / 2
		}
		positions[id] = pos
	}

	return Result{
		Positions: positions,
		Bounds:    boundsOf(positions, widths, cfg.NodeHeight),
	}
}

// columnOffsets returns the x offset of each depth column: the widest
// visible node of every shallower column plus one gap each.
func columnOffsets(t *mindmap.Tree, widths map[string]float64, gap float64) []float64 {
	maxDepth := 0
	colWidth := make(map[int]float64)
	for id, w := range widths {
		d := t.Depth(id)
		if d > maxDepth {
			maxDepth = d
		}
		if w > colWidth[d] {
			colWidth[d] = w
		}
	}

	offsets := make([]float64, maxDepth+1)
	x := 0.0
	for d := 0; d <= maxDepth; d++ {
		offsets[d] = x
		x += colWidth[d] + gap
	}
	return offsets
}

// allocateBands assigns each visible node the start of its contiguous
// stacking-axis band, walking the forest top-down with an explicit stack.
// Roots are stacked consecutively with one sibling gap between them.
func allocateBands(t *mindmap.Tree, metrics *Metrics, gap float64) []float64 {
	bands := make([]float64, t.Len())

	cursor := 0.0
	stack := make([]string, 0, t.Len())
	for _, root := range t.Roots() {
		idx, _ := t.Index(root)
		bands[idx] = cursor
		cursor += metrics.Span(root) + gap
		stack = append(stack, root)
	}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx, _ := t.Index(curr)
		childCursor := bands[idx]
		for _, kid := range t.Children(curr) {
			kidIdx, _ := t.Index(kid)
			bands[kidIdx] = childCursor
			childCursor += metrics.Span(kid) + gap
			stack = append(stack, kid)
		}
	}
	return bands
}
