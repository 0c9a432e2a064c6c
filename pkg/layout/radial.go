package layout

import (
	"math"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// Radial places the designated root (the first root when there are several)
// at the canvas center and distributes each node's children evenly across
// the angular sector inherited from that node. The root owns the full 2π;
// a child of a node with sector [start, end) receives an equal sub-sector
// and sits at its midpoint angle, at a radius growing linearly with its
// ring distance from the center.
//
// Sectors subdivide angle, not arc length, so deep unbalanced branches
// cluster tightly. That is a documented property of the algorithm, not a
// defect. Any additional roots are treated as extra top-level children of
// the center so the position map still covers every visible node.
type Radial struct{}

// Name returns the mode string for this strategy.
func (Radial) Name() string { return string(ModeRadial) }

type sector struct {
	id         string
	start, end float64 // angular sector in radians
	ring       int     // distance from the center node
}

// Layout computes positions for all visible nodes.
func (Radial) Layout(t *mindmap.Tree, cfg Config) Result {
	widths := visibleWidths(t, cfg)
	roots := t.Roots()

	center := roots[0]
	cx, cy := cfg.CanvasWidth/2, cfg.CanvasHeight/2

	positions := make(map[string]Position, t.Len())
	place := func(id string, x, y float64) {
		// Positions are box corners; anchor the box center on the point.
		positions[id] = Position{X: x - widths[id]/2, Y: y - cfg.NodeHeight/2}
	}
	place(center, cx, cy)

	// The first ring holds the center's children plus any extra roots.
	topLevel := append([]string{}, t.Children(center)...)
	topLevel = append(topLevel, roots[1:]...)
	if len(topLevel) == 0 {
		return Result{Positions: positions, Bounds: boundsOf(positions, widths, cfg.NodeHeight)}
	}

	stack := make([]sector, 0, t.Len())
	width := 2 * math.Pi / float64(len(topLevel))
	for i := len(topLevel) - 1; i >= 0; i-- {
		stack = append(stack, sector{
			id:    topLevel[i],
			start: float64(i) * width,
			end:   float64(i+1) * width,
			ring:  1,
		})
	}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		theta := (s.start + s.end) / 2
		r := cfg.RadialRadius * float64(s.ring)
		place(s.id, cx+r*math.Cos(theta), cy+r*math.Sin(theta))

		kids := t.Children(s.id)
		if len(kids) == 0 {
			continue
		}
		sub := (s.end - s.start) / float64(len(kids))
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, sector{
				id:    kids[i],
				start: s.start + float64(i)*sub,
				end:   s.start + float64(i+1)*sub,
				ring:  s.ring + 1,
			})
		}
	}

	return Result{
		Positions: positions,
		Bounds:    boundsOf(positions, widths, cfg.NodeHeight),
	}
}
