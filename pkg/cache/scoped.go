package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The HTTP service uses it so API renders never collide with CLI entries
// when both point at the same Redis or MongoDB backend.
//
// Example usage:
//
//	apiKeyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// BlobKey generates a prefixed key for blob caching.
func (k *ScopedKeyer) BlobKey(opts BlobKeyOpts) string {
	return k.prefix + k.inner.BlobKey(opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(slideHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(slideHash, opts)
}
