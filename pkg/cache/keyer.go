package cache

import "fmt"

// KeyVersion is bumped whenever the trace format changes so stale entries
// are never decoded.
const KeyVersion = 1

// Keyer builds cache keys.
type Keyer interface {
	// TraceKey identifies the trace of algorithm on the given input.
	TraceKey(algorithm string, input any) string

	// ArtifactKey identifies a rendered frame of a trace.
	ArtifactKey(traceHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts selects one rendered frame.
type ArtifactKeyOpts struct {
	Seq    int    `json:"seq"`
	Format string `json:"format"`
}

// DefaultKeyer hashes inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// TraceKey implements Keyer.
func (DefaultKeyer) TraceKey(algorithm string, input any) string {
	return hashKey(fmt.Sprintf("trace:v%d:%s", KeyVersion, algorithm), input)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return hashKey(fmt.Sprintf("artifact:v%d", KeyVersion), traceHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, giving callers that
// share one backend separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// TraceKey implements Keyer.
func (k *ScopedKeyer) TraceKey(algorithm string, input any) string {
	return k.prefix + k.inner.TraceKey(algorithm, input)
}

// ArtifactKey implements Keyer.
func (k *ScopedKeyer) ArtifactKey(traceHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(traceHash, opts)
}
