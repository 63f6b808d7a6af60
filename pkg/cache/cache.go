// Package cache provides pluggable byte caches for pipeline artifacts.
//
// Board generation is deterministic, so rendered documents are cached by
// a hash of everything that influenced them: the topology, the board
// parameters, and the render options. Three backends are provided:
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache TTLs per entry type. Plans are tiny and deterministic so they keep
// for a long time; rendered artifacts are larger and cheap to regenerate.
const (
	TTLPlan     = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores rendered artifacts and computed plans.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// PlanKeyOpts are the inputs that determine a computed plan.
type PlanKeyOpts struct {
	NInput           int
	NHidden          int
	NOutput          int
	DiameterMM       float64
	CenterDiameterMM float64
	PaddingMM        float64
	Policy           string
	ClampMax         float64
	ClampDelta       float64
	RuleWidthMM      float64
	AzimuthalWidthMM float64
}

// ArtifactKeyOpts are the render options that determine an artifact
// beyond its plan.
type ArtifactKeyOpts struct {
	Format      string
	Layer       string
	DebugGuides bool
	Scale       float64
}

// Keyer generates cache keys.
type Keyer interface {
	PlanKey(opts PlanKeyOpts) string
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlanKey generates a key for a computed plan.
func (DefaultKeyer) PlanKey(opts PlanKeyOpts) string {
	return hashKey("plan", opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}
