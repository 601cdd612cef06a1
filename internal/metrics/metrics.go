// Package metrics exposes Prometheus instruments for the chat pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChatTurnsTotal counts chat turns by answer mode and outcome.
	ChatTurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docuchat",
			Subsystem: "server",
			Name:      "chat_turns_total",
			Help:      "Number of chat turns handled, labeled by answer mode and outcome.",
		},
		[]string{"mode", "status"},
	)

	// RetrievalDuration observes how long similarity search takes.
	RetrievalDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "docuchat",
			Subsystem: "server",
			Name:      "retrieval_duration_seconds",
			Help:      "Time spent searching the vector index per chat turn.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		},
	)

	// GenerationDuration observes language model completion latency.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docuchat",
			Subsystem: "server",
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting for the language model per chat turn.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	// IndexedChunks tracks the size of the in-memory vector index.
	IndexedChunks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docuchat",
			Subsystem: "server",
			Name:      "indexed_chunks",
			Help:      "Number of chunks currently held in the vector index.",
		},
	)
)

// RecordChatTurn increments the turn counter for one handled chat request.
func RecordChatTurn(mode, status string) {
	ChatTurnsTotal.WithLabelValues(mode, status).Inc()
}

// RecordRetrieval observes one similarity search.
func RecordRetrieval(seconds float64) {
	RetrievalDuration.Observe(seconds)
}

// RecordGeneration observes one language model completion.
func RecordGeneration(provider string, seconds float64) {
	GenerationDuration.WithLabelValues(provider).Observe(seconds)
}

// SetIndexedChunks records the current index size.
func SetIndexedChunks(n int) {
	IndexedChunks.Set(float64(n))
}
