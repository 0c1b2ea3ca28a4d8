package probe

import (
	"sort"

	"github.com/halfdan/hashjoin/bucket"
	"github.com/halfdan/hashjoin/key"
)

// Hopscotch resolves collisions by keeping every entry within H slots of
// its home, using H-bit neighborhood bitmaps to find it in at most H
// comparisons. When the neighborhood is full but a farther slot is free,
// it bubbles that empty slot backward one swap at a time until it lands
// inside the neighborhood, then places the new entry there. Neither the
// neighborhood scan nor the forward search for a free slot wraps past the
// end of the bucket; running off the end is reported as an overflow, the
// same as any other probe strategy, and is recovered by a rehash.
type Hopscotch struct {
	H int
}

func (h Hopscotch) Name() string { return "Hopscotch" }

func (h Hopscotch) LookupResolution(b *bucket.Bucket, home int, k key.Key) bucket.Resolution {
	capacity := b.Capacity()
	limit := home + h.H
	if limit > capacity {
		limit = capacity
	}
	for idx := home; idx < limit; idx++ {
		if b.HopBit(home, idx-home, h.H) {
			if s := b.Slot(idx); s.Occupied && s.Key.Equal(k) {
				return bucket.Resolution{Kind: bucket.KindFound, FoundSlot: idx}
			}
		}
	}
	return bucket.Resolution{Kind: bucket.KindNotFound}
}

func (h Hopscotch) InsertResolution(b *bucket.Bucket, home int, k key.Key, count uint64) bucket.Resolution {
	capacity := b.Capacity()
	limit := home + h.H
	if limit > capacity {
		limit = capacity
	}

	for idx := home; idx < limit; idx++ {
		if b.HopBit(home, idx-home, h.H) {
			if s := b.Slot(idx); s.Occupied && s.Key.Equal(k) {
				return bucket.Resolution{Kind: bucket.KindFound, FoundSlot: idx}
			}
		}
	}

	for idx := home; idx < limit; idx++ {
		if !b.Slot(idx).Occupied {
			pos := idx - home
			return bucket.Resolution{
				Kind: bucket.KindInsertAt,
				Assignments: []bucket.Assignment{{
					Index: idx,
					Value: bucket.Slot{Key: k, Count: count, Occupied: true, Displacement: pos},
				}},
				HopUpdates:  []bucket.HopUpdate{{Home: home, Mask: b.HopMask(home, h.H) | bucket.BitAt(pos, h.H)}},
				NewOccupied: 1,
			}
		}
	}

	empty := -1
	for idx := limit; idx < capacity; idx++ {
		if !b.Slot(idx).Occupied {
			empty = idx
			break
		}
	}
	if empty == -1 {
		return bucket.Resolution{Kind: bucket.KindOverflow}
	}

	overlay := newHopOverlay(b, h.H)
	var assignments []bucket.Assignment

	for empty-home >= h.H {
		start := empty - (h.H - 1)
		if start < 0 {
			start = 0
		}

		moved := false
		for candidate := start; candidate < empty && !moved; candidate++ {
			mask := overlay.get(candidate)
			for pos := 0; pos < h.H; pos++ {
				if mask&bucket.BitAt(pos, h.H) == 0 {
					continue
				}
				target := candidate + pos
				if target >= empty {
					continue
				}
				moving := b.Slot(target)
				moving.Displacement = empty - candidate
				assignments = append(assignments, bucket.Assignment{Index: empty, Value: moving})
				overlay.set(candidate, (mask&^bucket.BitAt(pos, h.H))|bucket.BitAt(empty-candidate, h.H))
				empty = target
				moved = true
				break
			}
		}
		if !moved {
			return bucket.Resolution{Kind: bucket.KindOverflow}
		}
	}

	assignments = append(assignments, bucket.Assignment{
		Index: empty,
		Value: bucket.Slot{Key: k, Count: count, Occupied: true, Displacement: empty - home},
	})
	overlay.set(home, overlay.get(home)|bucket.BitAt(empty-home, h.H))

	return bucket.Resolution{
		Kind:        bucket.KindInsertAt,
		Assignments: assignments,
		HopUpdates:  overlay.updates(),
		NewOccupied: 1,
	}
}

// hopOverlay tracks the neighborhood bitmaps a bubble sequence has touched
// without writing them back to the bucket, since a probe strategy never
// mutates what it was given.
type hopOverlay struct {
	b    *bucket.Bucket
	h    int
	mask map[int]uint64
}

func newHopOverlay(b *bucket.Bucket, h int) *hopOverlay {
	return &hopOverlay{b: b, h: h, mask: make(map[int]uint64)}
}

func (o *hopOverlay) get(home int) uint64 {
	if m, ok := o.mask[home]; ok {
		return m
	}
	return o.b.HopMask(home, o.h)
}

func (o *hopOverlay) set(home int, mask uint64) { o.mask[home] = mask }

func (o *hopOverlay) updates() []bucket.HopUpdate {
	out := make([]bucket.HopUpdate, 0, len(o.mask))
	for home, mask := range o.mask {
		out = append(out, bucket.HopUpdate{Home: home, Mask: mask})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Home < out[j].Home })
	return out
}
