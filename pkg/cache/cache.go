// Package cache provides pluggable byte caching for the layout pipeline.
//
// The pipeline caches at three stages: imported documents, computed
// layouts, and rendered artifacts. Each stage has a dedicated key
// scheme (see [Keyer]) so entries invalidate independently - a layout
// config change invalidates layouts and artifacts but not documents.
//
// Backends:
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Documents change under the user's
// hands, so they expire fastest; rendered artifacts are pure functions
// of their key and could live forever, but bounded TTLs keep backends
// from accumulating stale entries.
const (
	TTLDocument = 1 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with optional per-entry expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts captures everything besides tree structure that
// affects a computed layout.
type LayoutKeyOpts struct {
	Mode   string // layout strategy name
	Config any    // geometry config, hashed by value
}

// ArtifactKeyOpts captures everything besides the layout that affects
// a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string // "svg", "dot", "json"
	Options any    // renderer options, hashed by value
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DocumentKey generates a key for an imported document, derived
	// from the raw source bytes.
	DocumentKey(sourceHash string) string

	// LayoutKey generates a key for a computed layout, derived from
	// the tree's structural signature plus layout options.
	LayoutKey(signature string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived
	// from the layout hash plus render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme: a stage prefix plus a
// SHA-256 hash of the inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key for document caching.
func (k *DefaultKeyer) DocumentKey(sourceHash string) string {
	return hashKey("doc", sourceHash)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(signature string, opts LayoutKeyOpts) string {
	return hashKey("layout", signature, opts.Mode, opts.Config)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts.Format, opts.Options)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
