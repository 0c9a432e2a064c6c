// Package pkg provides the core libraries for Mindgrid mind-map layout.
//
// # Overview
//
// Mindgrid turns flat mind-map node arrays into positioned 2D diagrams.
// The pkg directory is organized into five main areas:
//
//  1. [mindmap] - Tree indexing, structural signatures, fault tolerance
//  2. [layout] - The four layout strategies and the session engine
//  3. [virtualize] - Viewport culling for large maps
//  4. [document], [store], [cache] - Persistence and caching
//  5. [pipeline], [render] - Orchestration and output formats
//
// # Architecture
//
// The typical data flow through Mindgrid:
//
//	Flat node array (editor / import)
//	         ↓
//	    [mindmap] package (index + structural signature)
//	         ↓
//	    [layout] package (strategy + overrides + session cache)
//	         ↓
//	    [virtualize] package (viewport culling)
//	         ↓
//	    [render] package (SVG / DOT / JSON output)
//
// # Quick Start
//
// Lay out a tree and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/mindgrid/pkg/layout"
//	    "github.com/matzehuels/mindgrid/pkg/mindmap"
//	    "github.com/matzehuels/mindgrid/pkg/render/svg"
//	)
//
//	// 1. Index the flat node array
//	tree, _ := mindmap.Build(nodes)
//
//	// 2. Compute positions
//	eng := layout.NewEngine()
//	res, _, _ := eng.Layout(tree, layout.ModeHorizontal, layout.DefaultConfig())
//
//	// 3. Render to SVG
//	out := svg.Render(tree, res)
//
// Interactive editing keeps the engine alive across calls: re-layout is
// skipped while the structural signature is unchanged, and drag
// positions recorded through the engine's override store survive
// content-only edits.
//
// [mindmap]: github.com/matzehuels/mindgrid/pkg/mindmap
// [layout]: github.com/matzehuels/mindgrid/pkg/layout
// [virtualize]: github.com/matzehuels/mindgrid/pkg/virtualize
// [document]: github.com/matzehuels/mindgrid/pkg/document
// [store]: github.com/matzehuels/mindgrid/pkg/store
// [cache]: github.com/matzehuels/mindgrid/pkg/cache
// [pipeline]: github.com/matzehuels/mindgrid/pkg/pipeline
// [render]: github.com/matzehuels/mindgrid/pkg/render
package pkg
