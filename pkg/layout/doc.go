// Package layout computes deterministic 2D positions for mind-map trees.
//
// The package turns an indexed [mindmap.Tree] into a node-id → position map
// under one of four interchangeable strategies:
//
//   - [Horizontal]: left-to-right tree, the default
//   - [Vertical]: top-to-bottom mirror of Horizontal
//   - [Radial]: concentric rings with recursive angular sectors
//   - [Fishbone]: Ishikawa-style diagonal spines
//
// All strategies are pure functions: identical inputs produce bit-identical
// results, nothing is mutated, and an empty tree yields an empty [Result]
// rather than an error. Placement is driven by bottom-up subtree spans
// ([MeasureSpans]) so sibling subtrees never overlap, and every traversal
// uses explicit stacks and dense index-addressed arrays - trees thousands
// of levels deep cannot overflow the call stack.
//
// # Sessions
//
// [Engine] wraps the strategies in a per-document session that caches the
// last result, gates recomputation on the structural signature and carries
// the manual position [Overrides] a user has dragged into place. Content
// edits reuse the cache; structural edits recompute and clear overrides.
package layout
