package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_conversions_total",
		Help: "Currency conversions by outcome (live, fallback, error).",
	}, []string{"outcome"})

	FallbackUsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "budget_conversion_fallback_uses_total",
		Help: "Static-table rate resolutions by currency pair.",
	}, []string{"pair"})

	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "exchange_provider_request_duration_seconds",
		Help:    "Outbound exchange-rate provider request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Handled HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
)
