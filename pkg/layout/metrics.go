package layout

import "github.com/matzehuels/mindgrid/pkg/mindmap"

// Metrics holds the bottom-up subtree span of every visible node along the
// stacking axis: the total extent a node's visible subtree occupies once
// siblings are stacked with gaps between them.
//
// Spans are stored in an array addressed by the tree's dense node index, so
// lookups during placement are pointer-chase free.
type Metrics struct {
	tree  *mindmap.Tree
	spans []float64
	order []string // visible nodes, children before parents
}

// MeasureSpans computes subtree spans for all visible nodes.
//
// size(id) supplies one node's own extent along the stacking axis (height
// for horizontal layouts, estimated width for vertical ones); gap is the
// inter-sibling spacing. A leaf - no visible children, or collapsed - spans
// its own size; an internal node spans the sum of its children's spans plus
// (children-1) gaps.
//
// The pass walks an explicit children-before-parents order, so each node is
// measured exactly once and trees thousands of levels deep stay off the
// call stack.
func MeasureSpans(t *mindmap.Tree, size func(id string) float64, gap float64) *Metrics {
	m := &Metrics{
		tree:  t,
		spans: make([]float64, t.Len()),
	}

	// Visible pre-order reversed puts every node after all its children.
	pre := t.VisibleNodes()
	m.order = make([]string, len(pre))
	for i, id := range pre {
		m.order[len(pre)-1-i] = id
	}

	for _, id := range m.order {
		idx, _ := t.Index(id)
		kids := t.Children(id)
		if len(kids) == 0 {
			m.spans[idx] = size(id)
			continue
		}
		total := 0.0
		for _, kid := range kids {
			kidIdx, _ := t.Index(kid)
			total += m.spans[kidIdx]
		}
		total += float64(len(kids)-1) * gap
		m.spans[idx] = total
	}
	return m
}

// Span returns the subtree span of a node, or 0 for unknown or hidden nodes.
func (m *Metrics) Span(id string) float64 {
	idx, ok := m.tree.Index(id)
	if !ok {
		return 0
	}
	return m.spans[idx]
}

// Order returns the visible nodes in the children-before-parents processing
// order the spans were computed in.
func (m *Metrics) Order() []string { return m.order }
