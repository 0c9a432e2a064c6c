// Package document provides the persistent form of a mind map: a named,
// timestamped node array with JSON import/export and TOML outline import.
//
// # Overview
//
// A [Document] is the unit of storage and exchange. It wraps the flat
// node array that the layout engine consumes, plus a UUID identity and
// timestamps for stores that track freshness. Tree structure is never
// stored; it is derived from parent references on demand.
//
// # JSON Format
//
// The canonical interchange format is a JSON object with a "nodes" array:
//
//	{
//	  "id": "7d44…",
//	  "title": "Plan",
//	  "nodes": [
//	    {"id": "a", "content": "Root"},
//	    {"id": "b", "content": "Child", "parent_id": "a", "collapsed": true}
//	  ]
//	}
//
// Use [ImportJSON] / [ExportJSON] for files and [ReadJSON] / [WriteJSON]
// for streams. Export and re-import round-trip identically.
//
// # TOML Outlines
//
// [ImportTOML] accepts a lighter hand-authored outline format where IDs
// are optional and levels are derived. It is an authoring convenience,
// not an export target.
//
// # Validation
//
// Import validates that the node array can be indexed (non-empty,
// unique IDs). Structural oddities - dangling parents, inconsistent
// levels, even cyclic parent chains - are deliberately tolerated here
// and handled by the layout engine's fault-tolerance rules, so a single
// bad branch never makes a document unloadable.
package document
