package key

// Key is the two-field composite key used throughout the table and the
// join operator. Equality is exact value equality over both fields; there
// are no custom comparators.
type Key struct {
	First  Field
	Second Field
}

// New builds a composite key from its two fields.
func New(first, second Field) Key {
	return Key{First: first, Second: second}
}

// Equal reports whether two keys hold equal fields in the same order.
func (k Key) Equal(o Key) bool {
	return k.First.Equal(o.First) && k.Second.Equal(o.Second)
}

// Bytes concatenates the external wire encoding of both fields.
func (k Key) Bytes() []byte {
	out := make([]byte, 0, 2*(4+stringFieldWidth))
	out = append(out, k.First.Bytes()...)
	out = append(out, k.Second.Bytes()...)
	return out
}

// String renders the key for logs and test failures.
func (k Key) String() string {
	return "(" + k.First.String() + ", " + k.Second.String() + ")"
}
