// Package key defines the two-field composite key shared by the hash table
// and the equi-join operator.
package key

import (
	"encoding/binary"
	"strconv"
)

// Kind distinguishes the two field encodings a Field can hold.
type Kind uint8

const (
	IntKind Kind = iota
	StringKind
)

// stringFieldWidth is the fixed payload size reserved for a string field's
// external wire encoding, matching the padded layout external consumers of
// Bytes expect.
const stringFieldWidth = 128

// Field is one column of a composite Key. It holds either a 32-bit integer
// or a string, never both, and compares by value.
type Field struct {
	kind Kind
	i    int32
	s    string
}

// IntField builds an integer-valued field.
func IntField(v int32) Field { return Field{kind: IntKind, i: v} }

// StringField builds a string-valued field.
func StringField(v string) Field { return Field{kind: StringKind, s: v} }

// Kind reports which variant a field holds.
func (f Field) Kind() Kind { return f.kind }

// Int returns the field's integer value. It panics if the field is not an
// IntKind field.
func (f Field) Int() int32 {
	if f.kind != IntKind {
		panic("key: field is not an int field")
	}
	return f.i
}

// Str returns the field's string value. It panics if the field is not a
// StringKind field.
func (f Field) Str() string {
	if f.kind != StringKind {
		panic("key: field is not a string field")
	}
	return f.s
}

// String renders the field for display regardless of its kind.
func (f Field) String() string {
	if f.kind == IntKind {
		return strconv.FormatInt(int64(f.i), 10)
	}
	return f.s
}

// Equal reports whether two fields hold the same kind and value.
func (f Field) Equal(o Field) bool {
	return f.kind == o.kind && f.i == o.i && f.s == o.s
}

// HashBytes returns the byte encoding fed to the hash-function family: big
// endian for integers, raw bytes for strings. This encoding is independent
// of Bytes and is never used for wire serialization.
func (f Field) HashBytes() []byte {
	if f.kind == IntKind {
		buf := make([]byte, 4)
		binary.BigEndian.PutUint32(buf, uint32(f.i))
		return buf
	}
	return []byte(f.s)
}

// Bytes returns the field's external wire encoding: a little-endian 4-byte
// int, or a 4-byte little-endian length prefix followed by a zero-padded
// 128-byte string payload. It panics if a string field exceeds the fixed
// payload width. This encoding is not consumed by the hash-function family.
func (f Field) Bytes() []byte {
	if f.kind == IntKind {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, uint32(f.i))
		return buf
	}
	raw := []byte(f.s)
	if len(raw) > stringFieldWidth {
		panic("key: string field exceeds fixed wire width")
	}
	out := make([]byte, 4+stringFieldWidth)
	binary.LittleEndian.PutUint32(out[:4], uint32(len(raw)))
	copy(out[4:], raw)
	return out
}
