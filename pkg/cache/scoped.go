package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants (for example
// separate API deployments sharing one Redis) keep separate namespaces.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// ResolveKey generates a prefixed key for resolution snapshots.
func (k *ScopedKeyer) ResolveKey(declHash string, opts ResolveKeyOpts) string {
	return k.prefix + k.inner.ResolveKey(declHash, opts)
}

// GraphKey generates a prefixed key for rendered graphs.
func (k *ScopedKeyer) GraphKey(declHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(declHash, opts)
}
