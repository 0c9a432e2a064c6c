package layout

import "github.com/matzehuels/mindgrid/pkg/mindmap"

// Vertical mirrors [Horizontal] with the axes swapped: depth grows
// top-to-bottom along y, siblings stack left-to-right along x.
//
// Node heights are uniform, so every depth row sits at a fixed y. Subtree
// spans are measured in estimated node widths, with the horizontal spacing
// as the sibling gap.
type Vertical struct{}

// Name returns the mode string for this strategy.
func (Vertical) Name() string { return string(ModeVertical) }

// Layout computes positions for all visible nodes.
func (Vertical) Layout(t *mindmap.Tree, cfg Config) Result {
	widths := visibleWidths(t, cfg)
	metrics := MeasureSpans(t, func(id string) float64 { return widths[id] }, cfg.HSpacing)

	bands := allocateBands(t, metrics, cfg.HSpacing)
	rowY := cfg.NodeHeight + cfg.VSpacing

	positions := make(map[string]Position, t.Len())
	for _, id := range metrics.Order() {
		idx, _ := t.Index(id)
		pos := Position{Y: float64(t.Depth(id)) * rowY}
		if kids := t.Children(id); len(kids) == 0 {
			pos.X = bands[idx]
		} else {
			first := positions[kids[0]]
			last := positions[kids[len(kids)-1]]
			pos.X = (first.X + last.X) / 2
		}
		positions[id] = pos
	}

	return Result{
		Positions: positions,
		Bounds:    boundsOf(positions, widths, cfg.NodeHeight),
	}
}
