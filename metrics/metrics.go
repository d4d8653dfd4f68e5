package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "lexisearch"

var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ThesauriRequestsTotal counts HTTP exchanges with the lexical service by endpoint
	// ("pos", "lookup") and outcome ("ok", "error").
	ThesauriRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thesauri_requests_total",
			Help:      "Total number of requests sent to the lexical service",
		},
		[]string{"endpoint", "outcome"},
	)

	// LookupCacheTotal counts lookup cache results with label "result" ("hit"/"miss").
	LookupCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_cache_total",
			Help:      "Lookup cache hits and misses",
		},
		[]string{"result"},
	)

	// WordAnnotationsTotal counts annotated words by outcome ("ok", "failed").
	WordAnnotationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "word_annotations_total",
			Help:      "Words annotated per outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(ThesauriRequestsTotal)
	prometheus.MustRegister(LookupCacheTotal)
	prometheus.MustRegister(WordAnnotationsTotal)
}
