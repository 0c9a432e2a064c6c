package layout

import "github.com/matzehuels/mindgrid/pkg/mindmap"

// Engine is a per-document layout session. It owns the last structural
// signature, the manual override store and the cached result, so multiple
// documents can be laid out in the same process without cross-talk - there
// is no package-level state.
//
// Layout recomputes positions only when the structural signature, the mode
// or the config changed since the previous call; a content-only edit reuses
// the cached positions. A structural change additionally clears the
// override store. Overrides are applied on top of the (cached or fresh)
// computed positions on every call.
//
// An Engine is owned by a single caller and not safe for concurrent use.
type Engine struct {
	overrides *Overrides

	sig       string
	seenSig   bool
	mode      Mode
	cfg       Config
	cached    Result
	hasCached bool
}

// NewEngine creates an empty layout session.
func NewEngine() *Engine {
	return &Engine{overrides: NewOverrides()}
}

// Overrides exposes the session's override store. The input layer records
// drag results here; nothing else writes to it.
func (e *Engine) Overrides() *Overrides { return e.overrides }

// Layout returns positions for the tree, recomputing only when necessary.
// The boolean reports whether a fresh computation ran. The returned result
// is a copy with overrides applied; the engine's cache is never exposed.
func (e *Engine) Layout(t *mindmap.Tree, mode Mode, cfg Config) (Result, bool, error) {
	sig := ""
	if t != nil {
		sig = t.Signature()
	}

	structural := !e.seenSig || sig != e.sig
	if structural {
		// Tree shape changed: manual placements no longer apply.
		e.overrides.Clear()
	}

	if e.hasCached && !structural && mode == e.mode && cfg == e.cfg {
		out := e.cached.Clone()
		out.Positions = e.overrides.Apply(out.Positions)
		return out, false, nil
	}

	res, err := Compute(t, mode, cfg)
	if err != nil {
		return emptyResult(), false, err
	}

	e.sig = sig
	e.seenSig = true
	e.mode = mode
	e.cfg = cfg
	e.cached = res
	e.hasCached = true

	out := res.Clone()
	out.Positions = e.overrides.Apply(out.Positions)
	return out, true, nil
}

// Invalidate drops the cached result so the next Layout call recomputes.
// Overrides survive; only a structural change clears them.
func (e *Engine) Invalidate() {
	e.hasCached = false
}
