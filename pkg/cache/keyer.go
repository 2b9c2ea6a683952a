package cache

import "strings"

// ResolveKeyOpts are the options that influence a resolution result.
type ResolveKeyOpts struct {
	Policy     string   `json:"policy"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	MaxDepth   int      `json:"max_depth"`
	MaxPasses  int      `json:"max_passes"`
	Padding    float64  `json:"padding"`
	Spacing    float64  `json:"spacing"`
	RowHeight  float64  `json:"row_height"`
	Indent     float64  `json:"indent"`
	StackKinds []string `json:"stack_kinds"`
}

// GraphKeyOpts are the options that influence a rendered dependency graph.
type GraphKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ResolveKey keys a resolution snapshot.
	ResolveKey(declHash string, opts ResolveKeyOpts) string
	// GraphKey keys a rendered dependency graph.
	GraphKey(declHash string, opts GraphKeyOpts) string
}

// DefaultKeyer hashes inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResolveKey returns "resolve:<sha256>". Stack kinds are compared
// case-insensitively, so they are lower-cased before hashing.
func (DefaultKeyer) ResolveKey(declHash string, opts ResolveKeyOpts) string {
	kinds := make([]string, len(opts.StackKinds))
	for i, k := range opts.StackKinds {
		kinds[i] = strings.ToLower(strings.TrimSpace(k))
	}
	opts.StackKinds = kinds
	return hashKey("resolve", declHash, opts)
}

// GraphKey returns "graph:<sha256>".
func (DefaultKeyer) GraphKey(declHash string, opts GraphKeyOpts) string {
	return hashKey("graph", declHash, opts)
}
