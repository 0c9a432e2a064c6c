// Package pipeline provides the core layout pipeline for Mindgrid.
//
// This package implements the complete load → layout → render pipeline
// that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a document from a file, store, or raw bytes
//  2. Layout: Compute node positions for the chosen strategy
//  3. Render: Generate output in various formats (SVG, DOT, Graphviz SVG, JSON)
//
// Each stage can be run independently or as part of the complete
// pipeline. Layout and render results are cached keyed on the tree's
// structural signature plus the options that affect them.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "plan.json",
//	    Mode:    "horizontal",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	doc, err := runner.Load(ctx, opts)
//
//	// Layout with an existing document
//	res, err := runner.ComputeLayout(ctx, doc, opts)
//
//	// Render with an existing layout
//	artifacts, err := runner.Render(ctx, doc, res, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindgrid/pkg/cache"
	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/layout"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatGV   = "gv" // SVG rendered through Graphviz instead of the native renderer
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatGV:   true,
	FormatJSON: true,
}

// DefaultMode is the layout strategy used when none is requested.
const DefaultMode = layout.ModeHorizontal

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Input points at a JSON document or TOML outline;
	// the extension picks the decoder.
	Input   string `json:"input,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // bypass the document cache

	// Layout options
	Mode   string        `json:"mode,omitempty"`
	Config layout.Config `json:"config,omitzero"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	HideEdges   bool     `json:"hide_edges,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"` // DOT labels carry depth and metadata

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded document.
	Document *document.Document

	// Signature is the structural signature of the document's tree.
	Signature string

	// Layout contains the computed positions and bounds.
	Layout layout.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	RootCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // Whether the document came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot, gv, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" {
		return fmt.Errorf("input is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Mode == "" {
		o.Mode = string(DefaultMode)
	}
	if o.Config == (layout.Config{}) {
		o.Config = layout.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	_, err := layout.ParseMode(o.Mode)
	return err
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if _, err := layout.ParseMode(o.Mode); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Mode:   o.Mode,
		Config: o.Config,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Options: map[string]any{
			"title":       o.Title,
			"hide_edges":  o.HideEdges,
			"interactive": o.Interactive,
			"detailed":    o.Detailed,
		},
	}
}
