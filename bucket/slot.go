package bucket

import "github.com/halfdan/hashjoin/key"

// NoDisplacement marks a slot that has never held an entry.
const NoDisplacement = -1

// Slot is one cell of a bucket. Count accumulates the multiplicity of a
// build-side key; Displacement is the probe sequence length for Robin Hood
// and the offset from the owning home for Hopscotch, and is unused by
// linear probing.
type Slot struct {
	Key          key.Key
	Count        uint64
	Occupied     bool
	Displacement int
}

func emptySlot() Slot {
	return Slot{Displacement: NoDisplacement}
}
