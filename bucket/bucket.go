// Package bucket holds the fixed-capacity slot array a probe strategy reads
// and writes, plus the Resolution contract a probe strategy returns instead
// of mutating the bucket itself.
package bucket

// Bucket is a fixed-capacity array of slots together with the parallel
// neighborhood bitmaps Hopscotch relies on. Linear probing and Robin Hood
// never touch the bitmaps.
type Bucket struct {
	slots []Slot
	hop   []uint64
}

// New allocates an empty bucket with room for capacity entries.
func New(capacity int) *Bucket {
	slots := make([]Slot, capacity)
	for i := range slots {
		slots[i] = emptySlot()
	}
	return &Bucket{slots: slots, hop: make([]uint64, capacity)}
}

// Capacity reports the number of slots in the bucket (S in the geometry).
func (b *Bucket) Capacity() int { return len(b.slots) }

// Slot returns a copy of the slot at i.
func (b *Bucket) Slot(i int) Slot { return b.slots[i] }

// SetSlot overwrites the slot at i.
func (b *Bucket) SetSlot(i int, s Slot) { b.slots[i] = s }

// OccupiedCount scans the bucket and counts occupied slots. Table keeps a
// running counter for the hot path; this is for tests and invariant checks.
func (b *Bucket) OccupiedCount() int {
	n := 0
	for _, s := range b.slots {
		if s.Occupied {
			n++
		}
	}
	return n
}

// HopMask returns the low h bits of the neighborhood bitmap owned by home,
// as an MSB-first bit string: bit k (k in [0,h)) set means the slot at
// home+k currently holds an entry whose home is home.
func (b *Bucket) HopMask(home, h int) uint64 {
	return b.hop[home] & ((uint64(1) << uint(h)) - 1)
}

// SetHopMask overwrites the full neighborhood bitmap owned by home.
func (b *Bucket) SetHopMask(home int, mask uint64) {
	b.hop[home] = mask
}

// HopBit reports whether bit k of home's neighborhood bitmap is set.
func (b *Bucket) HopBit(home, k, h int) bool {
	return b.hop[home]&bitAt(k, h) != 0
}

// bitAt returns the mask for MSB-first bit position k within an h-bit
// neighborhood bitmap.
func bitAt(k, h int) uint64 {
	return uint64(1) << uint(h-1-k)
}

// BitAt exposes bitAt to sibling packages that compute neighborhood masks
// directly, such as probe's Hopscotch strategy.
func BitAt(k, h int) uint64 { return bitAt(k, h) }
