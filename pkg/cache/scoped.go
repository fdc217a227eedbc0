package cache

// ScopedKeyer wraps a Keyer with a prefix so several consumers can share one
// backend without colliding.
//
// Example usage:
//
//	// Keys written by the HTTP server
//	webKeyer := NewScopedKeyer(NewDefaultKeyer(), "web:")
//
//	// Keys written by the CLI
//	cliKeyer := NewDefaultKeyer()
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

// SolveKey generates a prefixed key for solver results.
func (k *ScopedKeyer) SolveKey(inputHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(solveKey string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(solveKey, opts)
}
