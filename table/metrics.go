package table

import "github.com/prometheus/client_golang/prometheus"

// Metrics wraps the Prometheus instruments a table reports while it runs.
// A Metrics value is always usable; instruments are only registered when a
// Registerer was supplied, so an unconfigured table still records into
// its own counters without panicking.
type Metrics struct {
	rehashes   prometheus.Counter
	overflows  prometheus.Counter
	probeSteps prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		rehashes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_rehashes_total",
			Help:      "Number of times the table grew and rehashed its contents.",
		}),
		overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_probe_overflows_total",
			Help:      "Number of times a probe strategy exhausted a bucket and forced a rehash.",
		}),
		probeSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "table_insert_assignments",
			Help:      "Number of slot assignments a successful insert required.",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.rehashes, m.overflows, m.probeSteps)
	}
	return m
}

func (m *Metrics) observeInsert(assignments int) {
	if m == nil {
		return
	}
	m.probeSteps.Observe(float64(assignments))
}

func (m *Metrics) observeRehash() {
	if m == nil {
		return
	}
	m.rehashes.Inc()
}

func (m *Metrics) observeOverflow() {
	if m == nil {
		return
	}
	m.overflows.Inc()
}
