// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// GateRejections counts requests turned away by the access gate.
	GateRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_gate_rejections_total",
			Help: "Requests rejected by the access gate",
		},
		[]string{"reason"},
	)

	// ReviewMutations counts review upserts and deletions that were persisted.
	ReviewMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_review_mutations_total",
			Help: "Persisted review mutations",
		},
		[]string{"op"},
	)

	AIGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_ai_generations_total",
			Help: "AI recipe generation attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RateLimited counts requests refused by a rate limiter, by key prefix.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_rate_limited_total",
			Help: "Requests refused for exceeding a rate limit",
		},
		[]string{"limiter"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipebox_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
