package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PollCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coinwatch_poll_cycles_total",
		Help: "Total number of completed poll cycles, successful or not",
	})

	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coinwatch_fetch_failures_total",
		Help: "Total number of failed provider fetches",
	})

	SamplesInserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coinwatch_samples_inserted_total",
		Help: "Total number of price samples written to the store",
	}, []string{"asset"})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coinwatch_fetch_duration_seconds",
		Help:    "Time taken for one provider fetch",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	})
)
