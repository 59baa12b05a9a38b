// Package cache stores rendered artifacts so repeated requests for the same
// fold sequence skip the simulation and the renderer.
//
// Only derived output is cached. A [paper.Paper] is cheap to rebuild from its
// fold notation, so simulation state never enters the cache.
//
// # Backends
//
//   - [FileCache]: JSON envelopes under the user cache directory (CLI)
//   - [RedisCache]: shared cache for multi-instance API servers
//   - [NullCache]: never stores anything (tests, --no-cache)
//
// # Keys
//
// A [Keyer] derives cache keys from the sequence hash and render options.
// Keys embed a SHA-256 of their inputs, so any option change yields a new key.
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(seqHash, cache.ArtifactKeyOpts{Step: 2, Format: "svg"})
//	data, hit, err := c.Get(ctx, key)
//
// [paper.Paper]: github.com/matzehuels/holepunch/pkg/paper.Paper
package cache

import (
	"context"
	"time"
)

// TTLs for cached entries. Rendered output of a given sequence never changes,
// so these only bound disk and memory use.
const (
	ArtifactTTL = 30 * 24 * time.Hour
	TraceTTL    = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Missing keys are not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts identifies one rendered step of a sequence.
type ArtifactKeyOpts struct {
	Step        int     `json:"step"`
	Format      string  `json:"format"`
	CellSize    float64 `json:"cell_size"`
	ShowPunches bool    `json:"show_punches"`
	Scale       float64 `json:"scale,omitempty"`
}

// TraceKeyOpts identifies a rendered fold-history graph.
type TraceKeyOpts struct {
	MovesOnly bool `json:"moves_only"`
	Detailed  bool `json:"detailed"`
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey returns the key for one rendered step.
	ArtifactKey(seqHash string, opts ArtifactKeyOpts) string

	// TraceKey returns the key for a rendered trace graph.
	TraceKey(seqHash string, opts TraceKeyOpts) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(seqHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", seqHash, opts)
}

// TraceKey returns "trace:<sha256>".
func (DefaultKeyer) TraceKey(seqHash string, opts TraceKeyOpts) string {
	return hashKey("trace", seqHash, opts)
}
