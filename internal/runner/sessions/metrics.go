package sessions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var transitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bybit_bot",
		Subsystem: "monitor",
		Name:      "transitions_total",
		Help:      "Monitor state transitions by target state",
	},
	[]string{"state"},
)

var failedPolls = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bybit_bot",
		Subsystem: "monitor",
		Name:      "failed_polls_total",
		Help:      "Price polls that returned no data",
	},
	[]string{"symbol"},
)
