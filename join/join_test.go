package join_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halfdan/hashjoin/hashfn"
	"github.com/halfdan/hashjoin/join"
	"github.com/halfdan/hashjoin/key"
	"github.com/halfdan/hashjoin/table"
)

func tup(dept, name string) key.Key {
	return key.New(key.StringField(dept), key.StringField(name))
}

func defaultParams(fn hashfn.Function, scheme table.SchemeKind) join.Params {
	return join.Params{
		Function:       fn,
		Scheme:         scheme,
		BucketCount:    4,
		BucketCapacity: 8,
		Neighborhood:   4,
		Growth:         table.GrowBuckets,
		LoadFactor:     0.8,
	}
}

// TestEquiJoinMinimal reproduces the minimal fixture: L has CS/Adam,
// CS/Ben, CS/Chris, CS/David; R has CS/Adam, CS/Ben, CS/Eva, CS/Fordham.
// Only Adam and Ben appear on both sides.
func TestEquiJoinMinimal(t *testing.T) {
	left := []key.Key{tup("CS", "Adam"), tup("CS", "Ben"), tup("CS", "Chris"), tup("CS", "David")}
	right := []key.Key{tup("CS", "Adam"), tup("CS", "Ben"), tup("CS", "Eva"), tup("CS", "Fordham")}

	for _, fn := range hashfn.Functions() {
		for _, scheme := range []table.SchemeKind{table.SchemeLinear, table.SchemeRobinHood, table.SchemeHopscotch} {
			j := join.New(left, right, defaultParams(fn, scheme))
			got, err := j.Join()
			require.NoError(t, err)
			assert.Equal(t, []key.Key{tup("CS", "Adam"), tup("CS", "Ben")}, got,
				"function=%s scheme=%s", fn, scheme)
		}
	}
}

func TestEquiJoinPreservesRightMultiplicity(t *testing.T) {
	left := []key.Key{tup("CS", "Adam")}
	right := []key.Key{tup("CS", "Adam"), tup("CS", "Adam"), tup("CS", "Ben")}

	j := join.New(left, right, defaultParams(hashfn.Standard, table.SchemeLinear))
	got, err := j.Join()
	require.NoError(t, err)
	assert.Equal(t, []key.Key{tup("CS", "Adam"), tup("CS", "Adam")}, got)
}

func TestEquiJoinEmptyLeftYieldsNoMatches(t *testing.T) {
	right := []key.Key{tup("CS", "Adam")}
	j := join.New(nil, right, defaultParams(hashfn.Standard, table.SchemeRobinHood))
	got, err := j.Join()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNextPanicsBeforeOpen(t *testing.T) {
	j := join.New(nil, nil, defaultParams(hashfn.Standard, table.SchemeLinear))
	assert.PanicsWithError(t, join.ErrNotOpen.Error(), func() {
		j.Next()
	})
}

func TestRewindRebuildsAndResetsCursor(t *testing.T) {
	left := []key.Key{tup("CS", "Adam")}
	right := []key.Key{tup("CS", "Adam"), tup("CS", "Ben")}

	j := join.New(left, right, defaultParams(hashfn.Standard, table.SchemeLinear))
	require.NoError(t, j.Open())

	first, ok := j.Next()
	require.True(t, ok)
	assert.Equal(t, tup("CS", "Adam"), first)

	_, ok = j.Next()
	assert.False(t, ok)

	require.NoError(t, j.Rewind())
	again, ok := j.Next()
	require.True(t, ok)
	assert.Equal(t, tup("CS", "Adam"), again)
	j.Close()
}
