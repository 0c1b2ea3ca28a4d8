// Package hashfn adapts the composite key onto one of several interchangeable
// scalar hash functions. Each field is hashed independently under its raw
// byte encoding and the two results are combined with XOR, so the combined
// value never favors either field's position.
package hashfn

import (
	farm "github.com/dgryski/go-farm"
	t1ha "github.com/dgryski/go-t1ha"
	"github.com/spaolacci/murmur3"

	"github.com/halfdan/hashjoin/key"
)

// Function selects a member of the hash-function family.
type Function int

const (
	FarmHash Function = iota
	MurmurHash3
	T1ha0
	Standard
)

// String names the function the way benchmark reports expect.
func (f Function) String() string {
	switch f {
	case FarmHash:
		return "FarmHash"
	case MurmurHash3:
		return "MurmurHash3"
	case T1ha0:
		return "T1ha0"
	case Standard:
		return "Standard"
	default:
		return "Unknown"
	}
}

// Functions lists every member of the family, in a stable order suitable for
// sweeping across a benchmark matrix.
func Functions() []Function {
	return []Function{FarmHash, MurmurHash3, T1ha0, Standard}
}

// Hash combines the two fields of a composite key into a single 64-bit hash
// under the selected function. The two fields are hashed independently and
// combined with XOR, so neither field dominates the result.
func Hash(k key.Key, fn Function) uint64 {
	return hashField(k.First, fn) ^ hashField(k.Second, fn)
}

func hashField(f key.Field, fn Function) uint64 {
	b := f.HashBytes()
	switch fn {
	case FarmHash:
		return farm.Hash64(b)
	case MurmurHash3:
		return uint64(murmur3.Sum32(b))
	case T1ha0:
		return t1ha.Sum64(b, 0)
	case Standard:
		return standardHash(b)
	default:
		panic("hashfn: unknown function")
	}
}

// standardHash folds the input with FNV-1a and finishes with a MurmurHash3
// 64-bit finalizer avalanche, the same two-step technique used for the
// built-in integer hashers of the library this package grew out of.
func standardHash(b []byte) uint64 {
	h := uint64(14695981039346656037)
	const prime = 1099511628211
	for _, c := range b {
		h ^= uint64(c)
		h *= prime
	}
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}
