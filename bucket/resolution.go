package bucket

import "github.com/halfdan/hashjoin/key"

// Kind classifies the outcome a probe strategy reports back to the table.
type Kind int

const (
	// KindFound means the key already occupies FoundSlot.
	KindFound Kind = iota
	// KindInsertAt means the key belongs at the slots named in Assignments,
	// which the table must apply verbatim before the insert is complete.
	KindInsertAt
	// KindOverflow means the bucket cannot accept the key without a rehash.
	KindOverflow
	// KindNotFound means lookup walked the full probe sequence without a
	// match.
	KindNotFound
)

// Assignment is one slot write a strategy asks the table to perform.
type Assignment struct {
	Index int
	Value Slot
}

// HopUpdate replaces the full neighborhood bitmap owned by Home.
type HopUpdate struct {
	Home int
	Mask uint64
}

// Resolution is the read-only plan a probe strategy hands back to the
// table. Strategies never mutate a Bucket themselves; they only describe
// what the table should do, which keeps a failed or retried probe (for
// example one that will be abandoned in favor of a rehash) from leaving a
// bucket in a half-updated state.
type Resolution struct {
	Kind Kind

	// FoundSlot is meaningful only for KindFound.
	FoundSlot int

	// Assignments and HopUpdates are meaningful only for KindInsertAt. The
	// table applies every assignment, then every hop update; the order
	// within each list does not matter since every Value was captured
	// by-value at resolution time.
	Assignments []Assignment
	HopUpdates  []HopUpdate

	// NewOccupied is how many previously-empty slots became occupied; it is
	// always 1 on a successful insert, regardless of how many existing
	// entries were shuffled to make room.
	NewOccupied int
}

// Scheme resolves how a key probes a single bucket under one collision
// strategy. Implementations must only read Bucket state and must never call
// SetSlot or SetHopMask directly; see Resolution.
type Scheme interface {
	Name() string
	InsertResolution(b *Bucket, home int, k key.Key, count uint64) Resolution
	LookupResolution(b *Bucket, home int, k key.Key) Resolution
}
