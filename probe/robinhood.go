package probe

import (
	"github.com/halfdan/hashjoin/bucket"
	"github.com/halfdan/hashjoin/key"
)

// RobinHood resolves collisions by the Robin Hood creed: a probing entry
// displaces any occupant with a strictly smaller probe sequence length
// (PSL), carrying the displaced occupant forward to continue the scan in
// its place. The whole displacement chain is computed against the bucket's
// current contents and returned as one ordered list of assignments; the
// table applies them after the fact, so a bucket that turns out to overflow
// mid-chain is never left half-shuffled.
type RobinHood struct{}

func (RobinHood) Name() string { return "RobinHood" }

func (RobinHood) InsertResolution(b *bucket.Bucket, home int, k key.Key, count uint64) bucket.Resolution {
	capacity := b.Capacity()
	idx := home
	disp := 0
	current := bucket.Slot{Key: k, Count: count, Occupied: true}
	var assignments []bucket.Assignment

	for step := 0; step < capacity; step++ {
		occupant := b.Slot(idx)

		if !occupant.Occupied {
			current.Displacement = disp
			assignments = append(assignments, bucket.Assignment{Index: idx, Value: current})
			return bucket.Resolution{Kind: bucket.KindInsertAt, Assignments: assignments, NewOccupied: 1}
		}

		if len(assignments) == 0 && occupant.Key.Equal(k) {
			return bucket.Resolution{Kind: bucket.KindFound, FoundSlot: idx}
		}

		if disp > occupant.Displacement {
			current.Displacement = disp
			assignments = append(assignments, bucket.Assignment{Index: idx, Value: current})
			current = occupant
			disp = occupant.Displacement
		}

		disp++
		idx = (idx + 1) % capacity
	}
	return bucket.Resolution{Kind: bucket.KindOverflow}
}

func (RobinHood) LookupResolution(b *bucket.Bucket, home int, k key.Key) bucket.Resolution {
	capacity := b.Capacity()
	idx := home
	for disp := 0; disp < capacity; disp++ {
		occupant := b.Slot(idx)
		if !occupant.Occupied || disp > occupant.Displacement {
			return bucket.Resolution{Kind: bucket.KindNotFound}
		}
		if occupant.Key.Equal(k) {
			return bucket.Resolution{Kind: bucket.KindFound, FoundSlot: idx}
		}
		idx = (idx + 1) % capacity
	}
	return bucket.Resolution{Kind: bucket.KindNotFound}
}
