// Package metrics registers the Prometheus collectors served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skill_matrix",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	CompetencesRescored = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skill_matrix",
		Subsystem: "scoring",
		Name:      "rescored_total",
		Help:      "Competence records whose computed level was rewritten.",
	})

	RescoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skill_matrix",
		Subsystem: "scoring",
		Name:      "failures_total",
		Help:      "Per-item failures recorded during batch rescoring.",
	})
)
