package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the service's Prometheus instruments.
type Metrics struct {
	UploadsTotal        *prometheus.CounterVec
	TranscriptionsTotal *prometheus.CounterVec
	ProcessingSeconds   prometheus.Histogram
	ModelLoaded         prometheus.Gauge
	CacheHitsTotal      prometheus.Counter
}

// New registers all instruments on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audioscribe",
			Name:      "uploads_total",
			Help:      "Uploads received, by validation outcome.",
		}, []string{"outcome"}),
		TranscriptionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "audioscribe",
			Name:      "transcriptions_total",
			Help:      "Processing attempts, by terminal status.",
		}, []string{"status"}),
		ProcessingSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "audioscribe",
			Name:      "processing_seconds",
			Help:      "Wall-clock transcription time in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 14),
		}),
		ModelLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "audioscribe",
			Name:      "model_loaded",
			Help:      "1 when the transcription engine is initialized.",
		}),
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "audioscribe",
			Name:      "cache_hits_total",
			Help:      "Transcriptions served from the result cache.",
		}),
	}
}
