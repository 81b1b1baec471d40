// Package metrics exposes the Prometheus instrumentation of a generation
// run: how many candidates were produced, how many combinations failed and
// why, and how long individual combination builds take.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides histogram buckets in seconds for per-combination
// build latency. Builds are CPU-bound and usually finish well under a second;
// the tail covers large supercells.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// CandidatesGenerated counts interface candidates emitted by the sweep.
	CandidatesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "intergen",
		Name:      "candidates_generated_total",
		Help:      "Number of interface candidates generated.",
	})

	// CombinationFailures counts per-combination failures by error kind.
	CombinationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "intergen",
		Name:      "combination_failures_total",
		Help:      "Number of grid-point combinations that failed to build.",
	}, []string{"kind"})

	// BuildDuration observes the wall time of single combination builds.
	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "intergen",
		Name:      "combination_build_duration_seconds",
		Help:      "Duration of individual interface combination builds.",
		Buckets:   DefaultBuckets,
	})
)
