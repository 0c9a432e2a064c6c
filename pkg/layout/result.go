package layout

// Position is the top-left corner of a node's box in abstract canvas space.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Bounds is the axis-aligned bounding box of a computed layout.
// The zero value is the explicit "empty layout" box.
type Bounds struct {
	MinX float64 `json:"min_x" bson:"min_x"`
	MinY float64 `json:"min_y" bson:"min_y"`
	MaxX float64 `json:"max_x" bson:"max_x"`
	MaxY float64 `json:"max_y" bson:"max_y"`
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Result is the output of one layout computation: a position for every
// visible node plus the bounding box enclosing all node boxes.
//
// An empty tree yields an empty map and zero-sized bounds - never an error.
type Result struct {
	Positions map[string]Position `json:"positions" bson:"positions"`
	Bounds    Bounds              `json:"bounds" bson:"bounds"`
}

// emptyResult is returned whenever there is nothing to place.
func emptyResult() Result {
	return Result{Positions: map[string]Position{}}
}

// Clone returns a deep copy of the result. Strategies return fresh maps, but
// the engine hands cached results to callers and must not share storage.
func (r Result) Clone() Result {
	out := Result{
		Positions: make(map[string]Position, len(r.Positions)),
		Bounds:    r.Bounds,
	}
	for id, p := range r.Positions {
		out.Positions[id] = p
	}
	return out
}

// boundsOf computes the bounding box of a set of placed node boxes.
// Box extents come from the per-node estimated width and the fixed height.
func boundsOf(positions map[string]Position, widths map[string]float64, nodeHeight float64) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	first := true
	var b Bounds
	for id, p := range positions {
		w := widths[id]
		if first {
			b = Bounds{MinX: p.X, MinY: p.Y, MaxX: p.X + w, MaxY: p.Y + nodeHeight}
			first = false
			continue
		}
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X+w > b.MaxX {
			b.MaxX = p.X + w
		}
		if p.Y+nodeHeight > b.MaxY {
			b.MaxY = p.Y + nodeHeight
		}
	}
	return b
}
