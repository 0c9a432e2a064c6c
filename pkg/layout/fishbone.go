package layout

import (
	"math"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// Fishbone lays the map out as an Ishikawa diagram: the designated root is
// the "head" at the right edge of the canvas, its direct children split
// alternately into a top and a bottom group, and each group's members march
// up-left / down-left along a diagonal spine at the configured angle.
//
// Specialized placement is two levels deep (head → spine members); every
// deeper descendant is placed by one shared rule - a vertical stack offset
// one column further left of its parent, growing away from the spine. Any
// additional roots are appended to the head's children before the top and
// bottom split.
type Fishbone struct{}

// Name returns the mode string for this strategy.
func (Fishbone) Name() string { return string(ModeFishbone) }

// Layout computes positions for all visible nodes.
func (Fishbone) Layout(t *mindmap.Tree, cfg Config) Result {
	widths := visibleWidths(t, cfg)
	roots := t.Roots()

	head := roots[0]
	headX := cfg.CanvasWidth - widths[head]
	headY := cfg.CanvasHeight / 2

	positions := make(map[string]Position, t.Len())
	positions[head] = Position{X: headX, Y: headY - cfg.NodeHeight/2}

	spines := append([]string{}, t.Children(head)...)
	spines = append(spines, roots[1:]...)

	angle := cfg.FishboneAngle * math.Pi / 180
	dx := cfg.FishboneStep * math.Cos(angle)
	dy := cfg.FishboneStep * math.Sin(angle)

	topSeen, bottomSeen := 0, 0
	for i, id := range spines {
		// Even indices ride the upper spine, odd the lower.
		sign := -1.0
		slot := topSeen
		if i%2 == 1 {
			sign = 1.0
			slot = bottomSeen
		}

		x := headX - float64(slot+1)*dx
		y := headY + sign*float64(slot+1)*dy
		positions[id] = Position{X: x - widths[id], Y: y - cfg.NodeHeight/2}

		placeStack(t, cfg, widths, positions, id, sign)

		if sign < 0 {
			topSeen++
		} else {
			bottomSeen++
		}
	}

	return Result{
		Positions: positions,
		Bounds:    boundsOf(positions, widths, cfg.NodeHeight),
	}
}

// placeStack positions all descendants of a spine member: each node's
// children form a vertical stack one column left of their parent, growing
// in the spine's direction (up for the top group, down for the bottom).
// An explicit stack bounds memory on deep branches.
func placeStack(t *mindmap.Tree, cfg Config, widths map[string]float64, positions map[string]Position, parent string, sign float64) {
	type frame struct{ id string }
	work := []frame{{parent}}

	for len(work) > 0 {
		f := work[len(work)-1]
		work = work[:len(work)-1]

		base := positions[f.id]
		childX := base.X - cfg.HSpacing
		childY := base.Y
		for _, kid := range t.Children(f.id) {
			positions[kid] = Position{X: childX - widths[kid], Y: childY}
			childY += sign * (cfg.NodeHeight + cfg.VSpacing)
			work = append(work, frame{kid})
		}
	}
}
