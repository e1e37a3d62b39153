package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, such as
// several server deployments sharing one Redis database.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tracesheet:")
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

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// ShareKey generates a prefixed key for stored worksheets.
func (k *ScopedKeyer) ShareKey(id string) string {
	return k.prefix + k.inner.ShareKey(id)
}
