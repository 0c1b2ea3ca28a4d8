package bench

import (
	"bufio"
	"fmt"
	"io"
)

// WriteReport writes one "<scheme> + <function>:\n<elapsed-seconds>\n"
// record per result, matching the benchmark harness's file format.
func WriteReport(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		if _, err := fmt.Fprintf(bw, "%s:\n%f\n", r.Scenario.Label(), r.Elapsed.Seconds()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
