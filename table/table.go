// Package table implements an in-memory open-addressing hash table whose
// geometry (bucket count and per-bucket capacity), hash function and
// collision-resolution strategy are all configurable independently.
package table

import (
	"go.uber.org/zap"

	"github.com/halfdan/hashjoin/bucket"
	"github.com/halfdan/hashjoin/key"
)

// Table is a two-axis open-addressing hash table: B buckets of S slots
// each, where B and S grow independently depending on the configured
// GrowthPolicy. It is not safe for concurrent use.
type Table struct {
	cfg      Config
	buckets  []*bucket.Bucket
	occupied []int
	scheme   bucket.Scheme
	logger   *zap.Logger
	metrics  *Metrics
}

// New validates cfg and allocates an empty table. Hopscotch's neighborhood
// size, once chosen, never changes across a rehash.
func New(cfg Config) (*Table, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	scheme, err := buildScheme(cfg)
	if err != nil {
		return nil, err
	}

	buckets := make([]*bucket.Bucket, cfg.BucketCount)
	for i := range buckets {
		buckets[i] = bucket.New(cfg.BucketCapacity)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Table{
		cfg:      cfg,
		buckets:  buckets,
		occupied: make([]int, cfg.BucketCount),
		scheme:   scheme,
		logger:   logger,
		metrics:  newMetrics(cfg.Registerer, cfg.MetricsNamespace),
	}, nil
}

// MustNew is New, panicking on a configuration error.
func MustNew(cfg Config) *Table {
	t, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return t
}

// Insert adds count to the multiplicity of key, inserting a fresh entry
// with that count if the key is not already present. It panics with
// ErrExhausted if MaxRehashDepth rehashes still cannot make room, which the
// spec treats as a fatal condition rather than a recoverable error: an
// implementer who needs a checked path can recover the panic at the call
// site.
func (t *Table) Insert(k key.Key, count uint64) {
	t.insert(k, count, 0)
}

func (t *Table) insert(k key.Key, count uint64, depth int) {
	if t.atLoadLimit() {
		t.growOrPanic(depth)
		t.insert(k, count, depth+1)
		return
	}

	bi, si := t.home(k)
	res := t.scheme.InsertResolution(t.buckets[bi], si, k, count)

	switch res.Kind {
	case bucket.KindFound:
		s := t.buckets[bi].Slot(res.FoundSlot)
		s.Count += count
		t.buckets[bi].SetSlot(res.FoundSlot, s)

	case bucket.KindInsertAt:
		for _, a := range res.Assignments {
			t.buckets[bi].SetSlot(a.Index, a.Value)
		}
		for _, hu := range res.HopUpdates {
			t.buckets[bi].SetHopMask(hu.Home, hu.Mask)
		}
		t.occupied[bi] += res.NewOccupied
		t.metrics.observeInsert(len(res.Assignments))

	case bucket.KindOverflow:
		t.metrics.observeOverflow()
		t.logger.Debug("probe overflow, rehashing", zap.Int("bucket", bi), zap.String("scheme", t.scheme.Name()))
		t.growOrPanic(depth)
		t.insert(k, count, depth+1)
	}
}

// Get returns the accumulated count for key and whether it was found at
// all. A miss is reported purely through the boolean; a found key reports
// zero only if every Insert of it passed a count of zero.
func (t *Table) Get(k key.Key) (uint64, bool) {
	bi, si := t.home(k)
	res := t.scheme.LookupResolution(t.buckets[bi], si, k)
	if res.Kind != bucket.KindFound {
		return 0, false
	}
	return t.buckets[bi].Slot(res.FoundSlot).Count, true
}

// Len returns the number of distinct keys currently stored.
func (t *Table) Len() int {
	n := 0
	for _, c := range t.occupied {
		n += c
	}
	return n
}

// Buckets returns B, the current bucket count.
func (t *Table) Buckets() int { return t.cfg.BucketCount }

// Capacity returns S, the current per-bucket slot count.
func (t *Table) Capacity() int { return t.cfg.BucketCapacity }

func (t *Table) growOrPanic(depth int) {
	if depth >= MaxRehashDepth {
		t.logger.Error("rehash recursion exhausted", zap.Int("depth", depth))
		panic(ErrExhausted)
	}
	t.rehash()
}

func (t *Table) atLoadLimit() bool {
	limit := int(float64(t.cfg.BucketCapacity) * t.cfg.LoadFactor)
	for _, c := range t.occupied {
		if c >= limit {
			return true
		}
	}
	return false
}

// rehash doubles either S or B, depending on the configured growth policy,
// and reinserts every live entry into a freshly allocated table.
func (t *Table) rehash() {
	oldCfg := t.cfg
	newCfg := t.cfg
	switch t.cfg.Growth {
	case GrowCapacity:
		newCfg.BucketCapacity *= 2
	case GrowBuckets:
		newCfg.BucketCount *= 2
	}

	scheme, err := buildScheme(newCfg)
	if err != nil {
		// Growth only doubles already-valid parameters, so the scheme
		// constructor cannot fail here; a failure would mean Config.Scheme
		// was corrupted after validation.
		panic(err)
	}

	buckets := make([]*bucket.Bucket, newCfg.BucketCount)
	for i := range buckets {
		buckets[i] = bucket.New(newCfg.BucketCapacity)
	}

	next := &Table{
		cfg:      newCfg,
		buckets:  buckets,
		occupied: make([]int, newCfg.BucketCount),
		scheme:   scheme,
		logger:   t.logger,
		metrics:  t.metrics,
	}

	for _, bkt := range t.buckets {
		for i := 0; i < bkt.Capacity(); i++ {
			s := bkt.Slot(i)
			if s.Occupied {
				next.insert(s.Key, s.Count, 0)
			}
		}
	}

	t.cfg = next.cfg
	t.buckets = next.buckets
	t.occupied = next.occupied
	t.scheme = next.scheme
	t.metrics.observeRehash()
	t.logger.Debug("rehash complete",
		zap.Int("oldBucketCount", oldCfg.BucketCount),
		zap.Int("oldBucketCapacity", oldCfg.BucketCapacity),
		zap.Int("bucketCount", t.cfg.BucketCount),
		zap.Int("bucketCapacity", t.cfg.BucketCapacity),
	)
}

// home splits a key's hash into an independent bucket index and in-bucket
// slot index using two distinct avalanche mixes. Deriving the two indexes
// from separate finalization passes, rather than from the same hash value
// split by modulus and division, keeps them from correlating: with a
// shared split, keys landing in nearby buckets tend to land in nearby
// in-bucket slots too, clustering load unevenly across the bucket array.
func (t *Table) home(k key.Key) (bucketIdx, slotIdx int) {
	h := t.cfg.Hasher(k)
	bucketIdx = reduceBucket(h, t.cfg.BucketCount)
	slotIdx = reduceSlot(h, t.cfg.BucketCapacity)
	return
}

func reduceBucket(h uint64, b int) int {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	return int(h % uint64(b))
}

func reduceSlot(h uint64, s int) int {
	h ^= h >> 29
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 32
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return int(h % uint64(s))
}
