package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AI outcomes.
const (
	outcomeModel    = "model"
	outcomeFallback = "fallback"
)

var aiRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ai_requests_total",
		Help: "Content requests by operation, split by whether the model answered or static fallback was served.",
	},
	[]string{"operation", "outcome"},
)

func observeAI(operation string, fromModel bool) {
	outcome := outcomeFallback
	if fromModel {
		outcome = outcomeModel
	}
	aiRequests.WithLabelValues(operation, outcome).Inc()
}
