package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// SubmissionsTotal counts submit requests by result (accepted, invalid, error).
	SubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "visionboard",
		Subsystem: "submission",
		Name:      "requests_total",
		Help:      "Total number of vision board submissions, labeled by result.",
	}, []string{"result"})

	// RenderDurationSeconds is the time spent producing the PDF, including image fetches.
	RenderDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "visionboard",
		Subsystem: "board",
		Name:      "render_duration_seconds",
		Help:      "Time to render a vision board PDF, labeled by result.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
	}, []string{"result"})

	ImageFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "visionboard",
		Subsystem: "images",
		Name:      "fetch_total",
		Help:      "Total number of gallery image fetches, labeled by result.",
	}, []string{"result"})

	// DispatchTotal counts notification tasks by task and result (sent, skipped, failed).
	DispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "visionboard",
		Subsystem: "notify",
		Name:      "dispatch_total",
		Help:      "Total number of notification dispatch tasks, labeled by task and result.",
	}, []string{"task", "result"})
)

// Register registers all collectors with the default registry. Safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			SubmissionsTotal,
			RenderDurationSeconds,
			ImageFetchTotal,
			DispatchTotal,
		)
	})
}
