// Package join implements a hash equi-join over two streams of composite
// keys: it builds a hash table from the left (build) side and probes it
// with the right (probe) side, emitting a match for every right tuple
// whose key occurs at least once on the left, preserving the right side's
// order and duplicates.
package join

import (
	"errors"

	"go.uber.org/zap"

	"github.com/halfdan/hashjoin/hashfn"
	"github.com/halfdan/hashjoin/key"
	"github.com/halfdan/hashjoin/table"
)

// ErrNotOpen is panicked by Next and Rewind when called before Open, the
// fatal-misuse contract a lifecycle operator is expected to enforce.
var ErrNotOpen = errors.New("join: operator not open")

// Params configures the hash table backing a join.
type Params struct {
	Function       hashfn.Function
	Scheme         table.SchemeKind
	BucketCount    int
	BucketCapacity int
	Neighborhood   int
	Growth         table.GrowthPolicy
	LoadFactor     float64
	Logger         *zap.Logger
}

// HashEqJoin is a build-then-probe hash equi-join operator. It exposes a
// minimal open/next/close/rewind lifecycle: Open builds the table from the
// left input, Next yields matches one at a time from the right input, and
// Close releases the table. Calling Next or Rewind before Open is a fatal
// misuse, not a recoverable error.
type HashEqJoin struct {
	left, right []key.Key
	params      Params

	tbl    *table.Table
	opened bool
	pos    int
}

// New builds a join over the given left (build) and right (probe) inputs.
// No work happens until Open is called.
func New(left, right []key.Key, params Params) *HashEqJoin {
	return &HashEqJoin{left: left, right: right, params: params}
}

// Open builds the hash table from the left input and resets the probe
// cursor to the start of the right input.
func (j *HashEqJoin) Open() error {
	hasher := func(k key.Key) uint64 { return hashfn.Hash(k, j.params.Function) }

	tbl, err := table.New(table.Config{
		BucketCount:    j.params.BucketCount,
		BucketCapacity: j.params.BucketCapacity,
		Hasher:         hasher,
		Scheme:         j.params.Scheme,
		Neighborhood:   j.params.Neighborhood,
		Growth:         j.params.Growth,
		LoadFactor:     j.params.LoadFactor,
		Logger:         j.params.Logger,
	})
	if err != nil {
		return err
	}

	for _, l := range j.left {
		tbl.Insert(l, 1)
	}

	j.tbl = tbl
	j.opened = true
	j.pos = 0
	return nil
}

// Next returns the next right-side tuple that matches some left-side key,
// in right-side order, or ok=false once the right input is exhausted. It
// panics with ErrNotOpen if the operator has not been opened.
func (j *HashEqJoin) Next() (tuple key.Key, ok bool) {
	if !j.opened {
		panic(ErrNotOpen)
	}
	for j.pos < len(j.right) {
		candidate := j.right[j.pos]
		j.pos++
		if count, found := j.tbl.Get(candidate); found && count >= 1 {
			return candidate, true
		}
	}
	return key.Key{}, false
}

// Close releases the build-side table. The operator can be reopened
// afterward with Open.
func (j *HashEqJoin) Close() {
	j.tbl = nil
	j.opened = false
	j.pos = 0
}

// Rewind closes and reopens the operator, rebuilding the table and
// resetting the probe cursor. It panics with ErrNotOpen if the operator is
// not currently open: never opened, or closed since its last Open.
func (j *HashEqJoin) Rewind() error {
	if !j.opened {
		panic(ErrNotOpen)
	}
	j.Close()
	return j.Open()
}

// Join drains the operator end to end via Open/Next/Close and returns every
// match in right-side order. It is a convenience wrapper around the
// lifecycle methods for callers that don't need incremental iteration.
func (j *HashEqJoin) Join() ([]key.Key, error) {
	if err := j.Open(); err != nil {
		return nil, err
	}
	defer j.Close()

	var out []key.Key
	for {
		t, ok := j.Next()
		if !ok {
			break
		}
		out = append(out, t)
	}
	return out, nil
}
