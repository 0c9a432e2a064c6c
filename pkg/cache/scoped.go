package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The HTTP API uses it to keep per-document cache namespaces separate
// when several documents share one Redis instance.
//
// Example usage:
//
//	docKeyer := NewScopedKeyer(NewDefaultKeyer(), "doc:7d44:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed key for document caching.
func (k *ScopedKeyer) DocumentKey(sourceHash string) string {
	return k.prefix + k.inner.DocumentKey(sourceHash)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(signature string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(signature, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
