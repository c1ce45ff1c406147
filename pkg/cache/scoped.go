package cache

import "strings"

// Keyer builds cache keys.
type Keyer interface {
	// HTTPKey is the key of a raw response from a remote service.
	HTTPKey(namespace, key string) string
	// CitationKey is the key of a parsed citation looked up by PubMed id.
	CitationKey(pmid string) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) HTTPKey(namespace, key string) string { return "http:" + namespace + ":" + key }

func (DefaultKeyer) CitationKey(pmid string) string {
	return "citation:" + strings.TrimSpace(pmid)
}

// ScopedKeyer wraps a Keyer with a prefix, so that several tools or users
// can share one Redis or MongoDB backend.
//
//	shared := NewScopedKeyer(NewDefaultKeyer(), "ihmgraph:")
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

func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

func (k *ScopedKeyer) CitationKey(pmid string) string {
	return k.prefix + k.inner.CitationKey(pmid)
}
