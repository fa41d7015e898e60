package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "bybit_bot",
	Subsystem: "monitor",
	Name:      "active_sessions",
	Help:      "Monitors currently running",
})
