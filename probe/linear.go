// Package probe implements the three collision-resolution strategies a
// table can run inside a bucket: linear probing, Robin Hood hashing and
// Hopscotch hashing. Every strategy is a pure function of bucket state: it
// reads slots and neighborhood bitmaps and returns a bucket.Resolution, and
// never mutates the bucket it was given.
package probe

import (
	"github.com/halfdan/hashjoin/bucket"
	"github.com/halfdan/hashjoin/key"
)

// Linear resolves collisions by scanning forward one slot at a time,
// wrapping at the end of the bucket.
type Linear struct{}

func (Linear) Name() string { return "LinearProbe" }

func (Linear) InsertResolution(b *bucket.Bucket, home int, k key.Key, count uint64) bucket.Resolution {
	capacity := b.Capacity()
	idx := home
	for step := 0; step < capacity; step++ {
		s := b.Slot(idx)
		if !s.Occupied {
			return bucket.Resolution{
				Kind: bucket.KindInsertAt,
				Assignments: []bucket.Assignment{{
					Index: idx,
					Value: bucket.Slot{Key: k, Count: count, Occupied: true, Displacement: step},
				}},
				NewOccupied: 1,
			}
		}
		if s.Key.Equal(k) {
			return bucket.Resolution{Kind: bucket.KindFound, FoundSlot: idx}
		}
		idx = (idx + 1) % capacity
	}
	return bucket.Resolution{Kind: bucket.KindOverflow}
}

func (Linear) LookupResolution(b *bucket.Bucket, home int, k key.Key) bucket.Resolution {
	capacity := b.Capacity()
	idx := home
	for step := 0; step < capacity; step++ {
		s := b.Slot(idx)
		if !s.Occupied {
			return bucket.Resolution{Kind: bucket.KindNotFound}
		}
		if s.Key.Equal(k) {
			return bucket.Resolution{Kind: bucket.KindFound, FoundSlot: idx}
		}
		idx = (idx + 1) % capacity
	}
	return bucket.Resolution{Kind: bucket.KindNotFound}
}
