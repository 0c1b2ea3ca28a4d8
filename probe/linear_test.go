package probe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halfdan/hashjoin/bucket"
	"github.com/halfdan/hashjoin/key"
	"github.com/halfdan/hashjoin/probe"
)

func k(i int32) key.Key { return key.New(key.IntField(i), key.IntField(0)) }

func apply(b *bucket.Bucket, res bucket.Resolution) {
	for _, a := range res.Assignments {
		b.SetSlot(a.Index, a.Value)
	}
	for _, u := range res.HopUpdates {
		b.SetHopMask(u.Home, u.Mask)
	}
}

func TestLinearInsertAndFind(t *testing.T) {
	b := bucket.New(4)
	var p probe.Linear

	res := p.InsertResolution(b, 0, k(1), 1)
	assert.Equal(t, bucket.KindInsertAt, res.Kind)
	apply(b, res)

	res = p.InsertResolution(b, 0, k(2), 1)
	assert.Equal(t, bucket.KindInsertAt, res.Kind)
	apply(b, res)
	assert.Equal(t, 1, res.Assignments[0].Index, "second key at same home moves on to the next slot")

	res = p.LookupResolution(b, 0, k(2))
	assert.Equal(t, bucket.KindFound, res.Kind)
	assert.Equal(t, 1, res.FoundSlot)

	res = p.LookupResolution(b, 0, k(99))
	assert.Equal(t, bucket.KindNotFound, res.Kind)
}

func TestLinearFoundAccumulatesAtSameSlot(t *testing.T) {
	b := bucket.New(4)
	var p probe.Linear
	apply(b, p.InsertResolution(b, 0, k(1), 1))

	res := p.InsertResolution(b, 0, k(1), 1)
	assert.Equal(t, bucket.KindFound, res.Kind)
	assert.Equal(t, 0, res.FoundSlot)
}

func TestLinearOverflowWhenFull(t *testing.T) {
	b := bucket.New(2)
	var p probe.Linear
	apply(b, p.InsertResolution(b, 0, k(1), 1))
	apply(b, p.InsertResolution(b, 0, k(2), 1))

	res := p.InsertResolution(b, 0, k(3), 1)
	assert.Equal(t, bucket.KindOverflow, res.Kind)
}
