package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. The API server uses it
// to keep its entries apart from other tenants of a shared Redis.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "holepunch:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer falls back
// to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey returns the prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(seqHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(seqHash, opts)
}

// TraceKey returns the prefixed trace key.
func (k *ScopedKeyer) TraceKey(seqHash string, opts TraceKeyOpts) string {
	return k.prefix + k.inner.TraceKey(seqHash, opts)
}
