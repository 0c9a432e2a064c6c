package mindmap

import (
	"slices"
	"strings"
)

// Signature returns the structural fingerprint of the tree: the sorted,
// comma-joined visible node IDs concatenated with the sorted, pipe-joined
// collapsed node IDs.
//
// Two trees with identical shape and collapse state produce the same
// signature regardless of node content, so content-only edits never trigger
// a re-layout. Adding or removing a node, or toggling any Collapsed flag,
// always changes the signature.
//
// The result is computed once and cached; a Tree is immutable after Build.
func (t *Tree) Signature() string {
	if t.sig != "" {
		return t.sig
	}

	visible := t.VisibleNodes()
	slices.Sort(visible)
	collapsed := t.CollapsedNodes()
	slices.Sort(collapsed)

	var b strings.Builder
	b.Grow(len(t.order) * 8)
	b.WriteString(strings.Join(visible, ","))
	b.WriteByte('#')
	b.WriteString(strings.Join(collapsed, "|"))

	t.sig = b.String()
	return t.sig
}

// Signature computes the structural fingerprint of a flat node list without
// retaining the intermediate Tree. It returns an empty string when the list
// cannot be indexed (empty or duplicate IDs).
func Signature(nodes []Node) string {
	t, err := Build(nodes)
	if err != nil {
		return ""
	}
	return t.Signature()
}
