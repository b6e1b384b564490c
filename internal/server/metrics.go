package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "speakerscout",
		Name:      "score_actions_total",
		Help:      "Score endpoint actions by outcome.",
	}, []string{"action", "outcome"})

	actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "speakerscout",
		Name:      "score_action_duration_seconds",
		Help:      "Latency of score endpoint actions.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 3, 10),
	}, []string{"action"})
)

func observeAction(action, outcome string, d time.Duration) {
	actionTotal.WithLabelValues(action, outcome).Inc()
	actionDuration.WithLabelValues(action).Observe(d.Seconds())
}
