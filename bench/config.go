package bench

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/halfdan/hashjoin/hashfn"
	"github.com/halfdan/hashjoin/internal/mathutil"
	"github.com/halfdan/hashjoin/table"
)

type scenarioFile struct {
	Scenarios []struct {
		Name           string  `mapstructure:"name"`
		Function       string  `mapstructure:"function"`
		Scheme         string  `mapstructure:"scheme"`
		BucketCount    int     `mapstructure:"bucket_count"`
		BucketCapacity int     `mapstructure:"bucket_capacity"`
		Neighborhood   int     `mapstructure:"neighborhood"`
		Growth         string  `mapstructure:"growth"`
		LoadFactor     float64 `mapstructure:"load_factor"`
		Cardinality    int     `mapstructure:"cardinality"`
		KeyLength      int     `mapstructure:"key_length"`
	} `mapstructure:"scenarios"`
}

// LoadScenarios reads a scenario sweep from a YAML, JSON or TOML config
// file via viper. An empty path returns the built-in default sweep.
func LoadScenarios(path string) ([]Scenario, error) {
	if path == "" {
		return DefaultScenarios(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("bench: read config %q: %w", path, err)
	}

	var file scenarioFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("bench: decode config %q: %w", path, err)
	}

	out := make([]Scenario, 0, len(file.Scenarios))
	for _, s := range file.Scenarios {
		fn, err := parseFunction(s.Function)
		if err != nil {
			return nil, err
		}
		scheme, err := parseScheme(s.Scheme)
		if err != nil {
			return nil, err
		}
		growth, err := parseGrowth(s.Growth)
		if err != nil {
			return nil, err
		}
		out = append(out, Scenario{
			Name:           s.Name,
			Function:       fn,
			Scheme:         scheme,
			BucketCount:    s.BucketCount,
			BucketCapacity: s.BucketCapacity,
			Neighborhood:   s.Neighborhood,
			Growth:         growth,
			LoadFactor:     s.LoadFactor,
			Cardinality:    s.Cardinality,
			KeyLength:      s.KeyLength,
		})
	}
	return out, nil
}

func parseFunction(s string) (hashfn.Function, error) {
	for _, fn := range hashfn.Functions() {
		if fn.String() == s {
			return fn, nil
		}
	}
	return 0, fmt.Errorf("bench: unknown hash function %q", s)
}

func parseScheme(s string) (table.SchemeKind, error) {
	for _, k := range []table.SchemeKind{table.SchemeLinear, table.SchemeRobinHood, table.SchemeHopscotch} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("bench: unknown scheme %q", s)
}

func parseGrowth(s string) (table.GrowthPolicy, error) {
	switch s {
	case "", "capacity":
		return table.GrowCapacity, nil
	case "buckets":
		return table.GrowBuckets, nil
	default:
		return 0, fmt.Errorf("bench: unknown growth policy %q", s)
	}
}

// DefaultScenarios sweeps every hash function against every collision
// scheme at a handful of cardinalities and key lengths, the way the benchmark harness this
// package grew out of swept cardinality, load factor and key length as
// independent dimensions.
func DefaultScenarios() []Scenario {
	cardinalities := []int{100, 1000, 10000}
	keyLengths := []int{20, 100}

	var out []Scenario
	for _, scheme := range []table.SchemeKind{table.SchemeLinear, table.SchemeRobinHood, table.SchemeHopscotch} {
		for _, fn := range hashfn.Functions() {
			for _, card := range cardinalities {
				buckets := int(mathutil.NextPowerOf2(uint64(card / 4)))
				if buckets < 1 {
					buckets = 1
				}
				for _, keyLen := range keyLengths {
					out = append(out, Scenario{
						Name:           fmt.Sprintf("%s/%s/card=%d/len=%d", scheme, fn, card, keyLen),
						Function:       fn,
						Scheme:         scheme,
						BucketCount:    buckets,
						BucketCapacity: 8,
						Neighborhood:   4,
						Growth:         table.GrowBuckets,
						LoadFactor:     table.DefaultLoadFactor,
						Cardinality:    card,
						KeyLength:      keyLen,
					})
				}
			}
		}
	}
	return out
}
