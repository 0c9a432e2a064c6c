package mindmap

import (
	"errors"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Build] when a node has an empty ID.
	// All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Build] when two nodes share the
	// same ID. Node IDs must be unique within a document.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrCyclicParent is returned by [Tree.Validate] when a parent chain
	// loops back on itself. Nodes trapped in such a loop are unreachable
	// from any root and are excluded from layout (see [Tree.Orphans]).
	ErrCyclicParent = errors.New("cyclic parent reference")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
// It is commonly used for style hints or export annotations and is never
// interpreted by the layout engine. Metadata maps are never nil after Build.
type Metadata map[string]any

// Node is one entry of the hierarchical content tree.
//
// ParentID is authoritative: child lists are always derived from it, never
// supplied by the caller. Level is advisory - when it disagrees with the
// parent-derived depth, the derived depth wins (see [Tree.Depth] and
// [Tree.InconsistentLevels]).
type Node struct {
	ID        string   // Unique identifier
	Content   string   // Opaque display payload, never interpreted
	Level     int      // Caller-supplied depth hint (0 = root)
	ParentID  string   // Empty for roots
	Collapsed bool     // Hides the entire descendant subtree
	Meta      Metadata // Arbitrary key-value metadata (never nil after Build)
}

// IsRoot reports whether the node carries no parent reference.
// A node whose ParentID points at a missing node is also treated as a root
// by [Build], but IsRoot only inspects the field.
func (n Node) IsRoot() bool { return n.ParentID == "" }

// Tree is an immutable index over a flat node list: parent→children lists,
// id→node lookup and a dense integer index per node for array-addressed
// per-call state in the layout and virtualization passes.
//
// Build is O(n); all accessors are O(1) or proportional to their output.
// A Tree is safe for concurrent readers once built.
type Tree struct {
	nodes    map[string]*Node
	children map[string][]string // parent ID -> child IDs, input order
	order    []string            // all IDs, input order
	roots    []string            // root IDs, input order
	index    map[string]int      // ID -> dense index
	depth    []int               // dense index -> parent-derived depth, -1 if orphaned
	orphans  []string            // IDs unreachable from any root (cyclic parents)

	sig string // cached structural signature
}

// Build indexes a flat node list into a Tree.
//
// A node whose ParentID references a node that is not present in the list is
// treated as an additional root rather than rejected. Nodes whose parent
// chain never reaches a root (a cycle) are retained in the lookup but
// reported by [Tree.Orphans] and excluded from traversal.
//
// Returns ErrInvalidNodeID or ErrDuplicateNodeID for malformed input.
func Build(nodes []Node) (*Tree, error) {
	t := &Tree{
		nodes:    make(map[string]*Node, len(nodes)),
		children: make(map[string][]string),
		order:    make([]string, 0, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		depth:    make([]int, len(nodes)),
	}

	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, exists := t.nodes[n.ID]; exists {
			return nil, ErrDuplicateNodeID
		}
		if n.Meta == nil {
			n.Meta = Metadata{}
		}
		t.index[n.ID] = len(t.order)
		t.order = append(t.order, n.ID)
		t.nodes[n.ID] = &n
	}

	for _, id := range t.order {
		n := t.nodes[id]
		if n.ParentID == "" {
			t.roots = append(t.roots, id)
			continue
		}
		if _, ok := t.nodes[n.ParentID]; !ok {
			// Dangling parent reference: promote to root.
			t.roots = append(t.roots, id)
			continue
		}
		t.children[n.ParentID] = append(t.children[n.ParentID], id)
	}

	t.assignDepths()
	return t, nil
}

// assignDepths walks the forest breadth-first from the roots, recording the
// parent-derived depth of every reachable node. Unreachable nodes (their
// parent chain loops) end up at depth -1 and are collected as orphans.
func (t *Tree) assignDepths() {
	for i := range t.depth {
		t.depth[i] = -1
	}

	queue := make([]string, 0, len(t.order))
	for _, id := range t.roots {
		t.depth[t.index[id]] = 0
		queue = append(queue, id)
	}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		d := t.depth[t.index[curr]]
		for _, child := range t.children[curr] {
			t.depth[t.index[child]] = d + 1
			queue = append(queue, child)
		}
	}

	for _, id := range t.order {
		if t.depth[t.index[id]] < 0 {
			t.orphans = append(t.orphans, id)
		}
	}
}

// Node returns the node with the given ID and true, or nil and false.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all nodes in input order.
// The returned slice contains pointers to the indexed node structs; callers
// must not modify structural fields (ID, ParentID, Collapsed).
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, len(t.order))
	for i, id := range t.order {
		out[i] = t.nodes[id]
	}
	return out
}

// Len returns the number of indexed nodes.
func (t *Tree) Len() int { return len(t.order) }

// Roots returns the IDs of all root nodes in input order. This includes
// nodes promoted to root because their ParentID dangles.
func (t *Tree) Roots() []string { return slices.Clone(t.roots) }

// Children returns the child IDs of a node in input order, hiding the
// subtree of a collapsed node: a collapsed node reports no children.
// Use [Tree.AllChildren] when hidden descendants are needed.
func (t *Tree) Children(id string) []string {
	n, ok := t.nodes[id]
	if !ok || n.Collapsed {
		return nil
	}
	return t.children[id]
}

// AllChildren returns the child IDs of a node regardless of collapse state.
// Diagnostic and export consumers use this accessor; layout never does.
func (t *Tree) AllChildren(id string) []string { return t.children[id] }

// Parent returns the effective parent of a node. Roots (including promoted
// roots with dangling references) report no parent.
func (t *Tree) Parent(id string) (string, bool) {
	n, ok := t.nodes[id]
	if !ok || n.ParentID == "" {
		return "", false
	}
	if _, exists := t.nodes[n.ParentID]; !exists {
		return "", false
	}
	return n.ParentID, true
}

// Index returns the dense integer index assigned to a node at Build time.
// Indices are contiguous in [0, Len) and stable for the lifetime of the Tree.
func (t *Tree) Index(id string) (int, bool) {
	i, ok := t.index[id]
	return i, ok
}

// Depth returns the parent-derived depth of a node: 0 for roots, parent
// depth + 1 otherwise. Returns -1 for unknown or orphaned nodes. This is
// the depth the layout engine trusts, not the caller-supplied Level field.
func (t *Tree) Depth(id string) int {
	i, ok := t.index[id]
	if !ok {
		return -1
	}
	return t.depth[i]
}

// Orphans returns the IDs of nodes unreachable from any root because their
// parent chain is cyclic. Orphans are never laid out or rendered.
func (t *Tree) Orphans() []string { return slices.Clone(t.orphans) }

// IsVisible reports whether a node is hidden by a collapsed ancestor.
// The node itself being collapsed does not hide it - only its descendants.
// Orphaned nodes are never visible.
func (t *Tree) IsVisible(id string) bool {
	n, ok := t.nodes[id]
	if !ok {
		return false
	}
	if i := t.index[id]; t.depth[i] < 0 {
		return false
	}
	seen := 0
	for n.ParentID != "" {
		parent, ok := t.nodes[n.ParentID]
		if !ok {
			break
		}
		if parent.Collapsed {
			return false
		}
		// Bounded ancestor walk: a chain longer than the node count
		// means a cycle slipped past depth assignment.
		if seen++; seen > len(t.order) {
			return false
		}
		n = parent
	}
	return true
}

// VisibleNodes returns the IDs of all nodes not hidden by a collapsed
// ancestor, in deterministic order: roots in input order, each followed by
// its visible descendants depth-first. Collapsed nodes appear themselves
// but contribute no descendants.
func (t *Tree) VisibleNodes() []string {
	out := make([]string, 0, len(t.order))
	// Explicit stack keeps deep trees off the call stack.
	stack := make([]string, 0, len(t.roots))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, t.roots[i])
	}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, curr)
		kids := t.Children(curr)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// CollapsedNodes returns the IDs of all nodes whose Collapsed flag is set,
// in input order, including nodes that are themselves hidden.
func (t *Tree) CollapsedNodes() []string {
	var out []string
	for _, id := range t.order {
		if t.nodes[id].Collapsed {
			out = append(out, id)
		}
	}
	return out
}
