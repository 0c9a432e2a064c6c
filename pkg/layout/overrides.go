package layout

// Overrides remembers node positions the user relocated by hand. The input
// layer records an override after a drag ends; the engine applies the store
// on top of computed positions and clears it when the structural signature
// changes, because a changed tree shape invalidates manual placement.
//
// Overridden nodes keep their originally computed subtree span, so nudging
// one node never reflows its siblings.
//
// An Overrides value belongs to a single [Engine] (or a single caller) and
// is not safe for concurrent use.
type Overrides struct {
	positions map[string]Position
}

// NewOverrides creates an empty override store.
func NewOverrides() *Overrides {
	return &Overrides{positions: make(map[string]Position)}
}

// Record stores a manual position for a node, replacing any earlier one.
func (o *Overrides) Record(id string, p Position) {
	o.positions[id] = p
}

// Remove drops a single override if present.
func (o *Overrides) Remove(id string) {
	delete(o.positions, id)
}

// Clear drops all overrides.
func (o *Overrides) Clear() {
	o.positions = make(map[string]Position)
}

// Len returns the number of stored overrides.
func (o *Overrides) Len() int { return len(o.positions) }

// Get returns the recorded override for a node, if any.
func (o *Overrides) Get(id string) (Position, bool) {
	p, ok := o.positions[id]
	return p, ok
}

// Apply returns a new position map in which every overridden id present in
// the input is replaced by its recorded position. Other entries pass
// through untouched; the input map is never mutated. Overrides for ids not
// present in the input (e.g. nodes hidden since the drag) are ignored.
func (o *Overrides) Apply(positions map[string]Position) map[string]Position {
	out := make(map[string]Position, len(positions))
	for id, p := range positions {
		if ovr, ok := o.positions[id]; ok {
			out[id] = ovr
			continue
		}
		out[id] = p
	}
	return out
}
