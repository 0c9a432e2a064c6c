// Package mindmap indexes flat mind-map node lists into traversable trees.
//
// A mind map arrives from the editing layer as a flat slice of [Node]
// values, each carrying its own ID, an optional ParentID and a Collapsed
// flag. [Build] derives the parent/child structure from ParentID alone -
// the Level field is treated as a hint and never trusted - and produces an
// immutable [Tree] with O(1) lookups, a dense integer index per node and a
// cached structural [Tree.Signature].
//
// # Fault tolerance
//
// Malformed input degrades locally instead of failing the whole document:
//
//   - A ParentID referencing a missing node promotes that node to a root.
//   - A cyclic parent chain strands its nodes as orphans; they are reported
//     by [Tree.Orphans] and [Tree.Validate] and skipped everywhere else.
//   - A Level field that disagrees with the derived depth is overridden and
//     reported by [Tree.InconsistentLevels].
//
// # Signature
//
// The structural signature fingerprints which nodes exist and which are
// collapsed. Layout caching is gated on it: content edits leave the
// signature unchanged, structural edits always change it.
package mindmap
