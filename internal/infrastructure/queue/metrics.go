package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// auditEventsTotal counts audit events by entity, action and outcome.
// result is "stored", "failed" or "dropped" (queue closed).
var auditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "audit_events_total",
		Help:      "Total number of catalog write audit events.",
	},
	[]string{"entity", "action", "result"},
)

var auditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "marketplace",
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

var auditProcessingDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "marketplace",
		Name:      "audit_processing_duration_seconds",
		Help:      "Duration of audit event persistence from dequeue to insert.",
		Buckets:   prometheus.DefBuckets,
	},
)
