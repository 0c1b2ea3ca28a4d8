// Command bench drives the hash-table and equi-join benchmark sweep and
// writes a report in the harness's fixed text format.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halfdan/hashjoin/bench"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		outputPath string
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the hash-table and equi-join benchmark sweep",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("bench: create logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			scenarios, err := bench.LoadScenarios(configPath)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(seed))
			results := make([]bench.Result, 0, len(scenarios))
			for _, sc := range scenarios {
				logger.Info("running scenario", zap.String("name", sc.Name))
				r, err := bench.Run(sc, rng)
				if err != nil {
					return err
				}
				results = append(results, r)
			}

			f, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("bench: create report %q: %w", outputPath, err)
			}
			defer f.Close()

			if err := bench.WriteReport(f, results); err != nil {
				return fmt.Errorf("bench: write report %q: %w", outputPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a scenario config file (YAML/JSON/TOML); empty uses the built-in sweep")
	cmd.Flags().StringVar(&outputPath, "output", "res.txt", "path to write the benchmark report")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for generated input tuples")

	return cmd
}
