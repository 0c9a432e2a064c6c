package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindgrid/pkg/cache"
	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
	"github.com/matzehuels/mindgrid/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	doc, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	tree, err := doc.Tree()
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Signature = tree.Signature()
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = tree.Len()
	result.Stats.RootCount = len(tree.Roots())
	result.CacheInfo.LoadHit = loadHit

	r.Logger.Info("loaded document",
		"nodes", tree.Len(),
		"roots", len(tree.Roots()),
		"duration", result.Stats.LoadTime)

	if orphans := tree.Orphans(); len(orphans) > 0 {
		r.Logger.Warn("cyclic parent chains excluded from layout", "nodes", orphans)
	}
	if bad := tree.InconsistentLevels(); len(bad) > 0 {
		r.Logger.Warn("level fields disagree with parent-derived depth", "nodes", bad)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	res, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"mode", opts.Mode,
		"positions", len(res.Positions),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, tree, doc, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads the input document with caching and returns
// cache hit info. The cache key is derived from the raw source bytes,
// so an edited file never serves a stale document.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*document.Document, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	doc, raw, err := loadDocument(opts.Input)
	if err != nil {
		return nil, false, err
	}
	cacheKey := r.Keyer.DocumentKey(cache.Hash(raw))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cached, err := document.ReadJSON(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "document")
				return cached, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	var buf bytes.Buffer
	if err := document.WriteJSON(doc, &buf); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLDocument); err == nil {
			observability.Cache().OnCacheSet(ctx, "document", buf.Len())
		}
	}

	return doc, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (*document.Document, error) {
	doc, _, err := r.LoadWithCacheInfo(ctx, opts)
	return doc, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// cache hit info. The cache key combines the tree's structural
// signature with the layout options, mirroring the signature gate the
// interactive engine uses.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, tree *mindmap.Tree, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, false, err
	}
	r.applyLogger(&opts)

	mode, err := layout.ParseMode(opts.Mode)
	if err != nil {
		return layout.Result{}, false, err
	}

	cacheKey := r.Keyer.LayoutKey(tree.Signature(), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached layout.Result
		if err := json.Unmarshal(data, &cached); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// Corrupt entry: fall through to recompute.
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, opts.Mode, tree.Len())
	res, err := layout.Compute(tree, mode, opts.Config)
	observability.Engine().OnLayoutComplete(ctx, opts.Mode, true, time.Since(start), err)
	if err != nil {
		return layout.Result{}, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return res, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, tree *mindmap.Tree, opts Options) (layout.Result, error) {
	res, _, err := r.ComputeLayoutWithCacheInfo(ctx, tree, opts)
	return res, err
}

// RenderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, tree *mindmap.Tree, doc *document.Document, res layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := json.Marshal(res)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache.
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	rendered, err := renderFormats(ctx, tree, doc, res, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, tree *mindmap.Tree, doc *document.Document, res layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, tree, doc, res, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
