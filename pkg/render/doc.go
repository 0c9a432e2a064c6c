// Package render provides visualization rendering for mind maps.
//
// # Overview
//
// This package contains the renderers that turn a computed layout into
// visual output:
//
//   - Inline SVG diagrams (in [svg] subpackage)
//   - Graphviz DOT export and rendering (in [dot] subpackage)
//
// # SVG Diagrams
//
// The [svg] subpackage draws the four layout strategies directly: one
// rounded box per node, connector paths from parent to child, and an
// optional hover interaction script. It renders from a position map, so
// anything the layout engine produces - including virtualized subsets
// and user-overridden positions - draws without special cases.
//
//	out := svg.Render(tree, result, svg.WithTitle("Plan"))
//
// # DOT Export
//
// The [dot] subpackage exports the tree structure to Graphviz DOT for
// interop with graph tooling, and can render the DOT to SVG in-process
// via Graphviz. DOT output discards computed positions; Graphviz does
// its own layout.
//
//	d := dot.ToDOT(tree, dot.Options{})
//	out, err := dot.RenderSVG(d)
//
// [svg]: github.com/matzehuels/mindgrid/pkg/render/svg
// [dot]: github.com/matzehuels/mindgrid/pkg/render/dot
package render
