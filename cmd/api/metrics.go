package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/davidleathers/demo-call-gateway/internal/service/intake"
)

// Intake outcome metrics, exposed on /metrics alongside the HTTP metrics.

var (
	callsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dcg",
			Subsystem: "intake",
			Name:      "calls_dispatched_total",
			Help:      "Total number of successfully dispatched demo calls",
		},
		[]string{"provider"},
	)

	callsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dcg",
			Subsystem: "intake",
			Name:      "calls_failed_total",
			Help:      "Total number of failed call dispatches",
		},
		[]string{"provider"},
	)

	throttledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dcg",
			Subsystem: "intake",
			Name:      "throttled_total",
			Help:      "Total number of per-number throttle rejections",
		},
	)
)

type intakeMetrics struct{}

func newIntakeMetrics() intake.MetricsCollector {
	return intakeMetrics{}
}

func (intakeMetrics) RecordCallDispatched(provider string) {
	callsDispatchedTotal.WithLabelValues(provider).Inc()
}

func (intakeMetrics) RecordCallFailed(provider string) {
	callsFailedTotal.WithLabelValues(provider).Inc()
}

func (intakeMetrics) RecordThrottled() {
	throttledTotal.Inc()
}
