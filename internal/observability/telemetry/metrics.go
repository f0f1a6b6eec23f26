package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Skill metrics
	SkillRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cognitunes_skill_requests_total",
		Help: "Total skill events handled, by request type and intent",
	}, []string{"request_type", "intent"})

	SkillLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cognitunes_skill_latency_seconds",
		Help:    "Time to produce a skill response",
		Buckets: prometheus.DefBuckets,
	})

	// Classifier metrics
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cognitunes_classifications_total",
		Help: "Classifier calls, by outcome and label",
	}, []string{"outcome", "label"})

	ClassifierLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cognitunes_classifier_latency_seconds",
		Help:    "Latency of the outbound emotion classification call",
		Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
	})
)
