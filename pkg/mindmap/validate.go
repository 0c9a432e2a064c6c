package mindmap

import "fmt"

// Validate checks structural integrity and returns nil if the tree is a
// well-formed forest.
//
// The only fatal defect is a cyclic parent chain: nodes caught in a cycle
// can never be reached from a root, so Validate returns ErrCyclicParent
// (wrapped with the offending IDs). The rest of the tree remains fully
// usable - layout and virtualization simply skip the orphaned nodes, so a
// caller may treat this error as a warning.
//
// Inconsistent Level fields are not an error; see [Tree.InconsistentLevels].
func (t *Tree) Validate() error {
	if len(t.orphans) > 0 {
		return fmt.Errorf("%w: %d node(s) unreachable from any root, first %q",
			ErrCyclicParent, len(t.orphans), t.orphans[0])
	}
	return nil
}

// InconsistentLevels returns the IDs of nodes whose caller-supplied Level
// field disagrees with the parent-derived depth, in input order.
//
// The engine always trusts ParentID over Level, so such nodes are laid out
// at their derived depth. Callers that care surface the returned IDs as
// validation warnings; orphaned nodes are not reported here.
func (t *Tree) InconsistentLevels() []string {
	var out []string
	for _, id := range t.order {
		d := t.depth[t.index[id]]
		if d < 0 {
			continue
		}
		if t.nodes[id].Level != d {
			out = append(out, id)
		}
	}
	return out
}
