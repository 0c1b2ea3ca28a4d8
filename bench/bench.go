// Package bench runs the equi-join end to end over randomly generated
// inputs and reports how long each configuration took, mirroring the
// benchmark sweep (hash function, collision scheme, growth policy, load
// factor, cardinality and key length) that motivated this table's design.
package bench

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/halfdan/hashjoin/hashfn"
	"github.com/halfdan/hashjoin/join"
	"github.com/halfdan/hashjoin/key"
	"github.com/halfdan/hashjoin/table"
)

// Scenario is one point in the benchmark sweep.
type Scenario struct {
	Name           string
	Function       hashfn.Function
	Scheme         table.SchemeKind
	BucketCount    int
	BucketCapacity int
	Neighborhood   int
	Growth         table.GrowthPolicy
	LoadFactor     float64
	Cardinality    int
	KeyLength      int
}

// Label renders the scheme+function pair the way WriteReport's file format
// expects.
func (s Scenario) Label() string {
	return fmt.Sprintf("%s + %s", s.Scheme, s.Function)
}

// Result pairs a scenario with how long its join took to run.
type Result struct {
	Scenario Scenario
	Elapsed  time.Duration
}

// Run executes one scenario end to end: generate left and right inputs of
// the configured cardinality and key length, join them, and report elapsed
// time.
func Run(scenario Scenario, rng *rand.Rand) (Result, error) {
	left := randomTuples(rng, scenario.Cardinality, scenario.KeyLength)
	right := randomTuples(rng, scenario.Cardinality, scenario.KeyLength)

	j := join.New(left, right, join.Params{
		Function:       scenario.Function,
		Scheme:         scenario.Scheme,
		BucketCount:    scenario.BucketCount,
		BucketCapacity: scenario.BucketCapacity,
		Neighborhood:   scenario.Neighborhood,
		Growth:         scenario.Growth,
		LoadFactor:     scenario.LoadFactor,
	})

	start := time.Now()
	if _, err := j.Join(); err != nil {
		return Result{}, fmt.Errorf("bench: scenario %q: %w", scenario.Name, err)
	}
	return Result{Scenario: scenario, Elapsed: time.Since(start)}, nil
}

func randomTuples(rng *rand.Rand, n, keyLen int) []key.Key {
	out := make([]key.Key, n)
	for i := range out {
		out[i] = key.New(key.StringField(randString(rng, keyLen)), key.StringField(randString(rng, keyLen)))
	}
	return out
}

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func randString(rng *rand.Rand, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
