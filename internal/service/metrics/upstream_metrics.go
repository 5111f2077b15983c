package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "finboard",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Upstream provider calls by outcome",
		},
		[]string{"provider", "outcome"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finboard",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency of upstream provider calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	FeedsLoaded = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "finboard",
			Subsystem: "news",
			Name:      "feeds_loaded",
			Help:      "Feeds that contributed articles per aggregation",
			Buckets:   []float64{0, 1, 2, 3, 4, 5, 6, 8, 10, 12},
		},
		[]string{"digest"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(UpstreamRequests, UpstreamLatency, FeedsLoaded)
	})
}

// ObserveUpstream records one provider call.
func ObserveUpstream(provider string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	UpstreamRequests.WithLabelValues(provider, outcome).Inc()
	UpstreamLatency.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
