package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// cacheRequestsTotal counts entity cache lookups; result is "hit", "miss" or "error".
var cacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "cache_requests_total",
		Help:      "Total number of entity cache lookups, labelled by entity and result.",
	},
	[]string{"entity", "result"},
)

var cacheFlushesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "marketplace",
		Name:      "cache_flushes_total",
		Help:      "Total number of entity cache flushes.",
	},
	[]string{"entity"},
)
