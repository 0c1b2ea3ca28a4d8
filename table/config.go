package table

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/halfdan/hashjoin/bucket"
	"github.com/halfdan/hashjoin/key"
	"github.com/halfdan/hashjoin/probe"
)

// SchemeKind selects one of the three collision-resolution strategies.
type SchemeKind int

const (
	SchemeLinear SchemeKind = iota
	SchemeRobinHood
	SchemeHopscotch
)

// GrowthPolicy selects which axis a rehash extends.
type GrowthPolicy int

const (
	// GrowCapacity doubles S, the per-bucket slot count.
	GrowCapacity GrowthPolicy = iota
	// GrowBuckets doubles B, the bucket count.
	GrowBuckets
)

// DefaultLoadFactor is the load factor a Config uses when left at zero.
const DefaultLoadFactor = 0.8

// MaxRehashDepth caps the number of rehashes a single insert may trigger
// before the table gives up and reports exhaustion.
const MaxRehashDepth = 8

// ErrInvalidConfig is returned by New when a Config fails validation.
var ErrInvalidConfig = errors.New("table: invalid configuration")

// ErrExhausted is panicked by Insert when an insert would need more than
// MaxRehashDepth rehashes to succeed.
var ErrExhausted = errors.New("table: exhausted rehash recursion")

// Config describes a table's geometry, hash function and collision
// strategy. The zero value is not usable; construct one explicitly and pass
// it to New.
type Config struct {
	// BucketCount is B, the number of buckets.
	BucketCount int
	// BucketCapacity is S, the number of slots per bucket.
	BucketCapacity int
	// Hasher maps a composite key to a 64-bit hash. Supplying the hash
	// function as an injected value, rather than selecting among named
	// algorithms internally, keeps the table decoupled from any one hash
	// family.
	Hasher func(key.Key) uint64
	// Scheme selects the collision-resolution strategy.
	Scheme SchemeKind
	// Neighborhood is H, the Hopscotch neighborhood size. Ignored unless
	// Scheme is SchemeHopscotch.
	Neighborhood int
	// Growth selects which axis a rehash extends.
	Growth GrowthPolicy
	// LoadFactor is the fraction of a bucket's capacity that may be filled
	// before an insert proactively rehashes. Zero means DefaultLoadFactor.
	LoadFactor float64

	// Logger receives structured diagnostics about rehashes and overflow
	// recovery. Nil means no logging.
	Logger *zap.Logger
	// Registerer, if non-nil, receives the table's Prometheus metrics.
	Registerer prometheus.Registerer
	// MetricsNamespace prefixes registered metric names.
	MetricsNamespace string
}

func (c *Config) withDefaults() Config {
	out := *c
	if out.LoadFactor == 0 {
		out.LoadFactor = DefaultLoadFactor
	}
	return out
}

func (c Config) validate() error {
	if c.BucketCount < 1 {
		return fmt.Errorf("%w: bucket count must be >= 1, got %d", ErrInvalidConfig, c.BucketCount)
	}
	if c.BucketCapacity < 1 {
		return fmt.Errorf("%w: bucket capacity must be >= 1, got %d", ErrInvalidConfig, c.BucketCapacity)
	}
	if c.LoadFactor <= 0 || c.LoadFactor > 1 {
		return fmt.Errorf("%w: load factor must be in (0,1], got %v", ErrInvalidConfig, c.LoadFactor)
	}
	if c.Hasher == nil {
		return fmt.Errorf("%w: hasher is required", ErrInvalidConfig)
	}
	if c.Scheme == SchemeHopscotch {
		if c.Neighborhood < 1 || c.Neighborhood > c.BucketCapacity || c.Neighborhood > 64 {
			return fmt.Errorf("%w: neighborhood must be in [1,min(64,bucket capacity)], got %d", ErrInvalidConfig, c.Neighborhood)
		}
	}
	return nil
}

func buildScheme(c Config) (bucket.Scheme, error) {
	switch c.Scheme {
	case SchemeLinear:
		return probe.Linear{}, nil
	case SchemeRobinHood:
		return probe.RobinHood{}, nil
	case SchemeHopscotch:
		return probe.Hopscotch{H: c.Neighborhood}, nil
	default:
		return nil, fmt.Errorf("%w: unknown scheme %d", ErrInvalidConfig, c.Scheme)
	}
}

// String names a scheme the way benchmark reports expect.
func (s SchemeKind) String() string {
	switch s {
	case SchemeLinear:
		return "LinearProbe"
	case SchemeRobinHood:
		return "RobinHood"
	case SchemeHopscotch:
		return "Hopscotch"
	default:
		return "Unknown"
	}
}
