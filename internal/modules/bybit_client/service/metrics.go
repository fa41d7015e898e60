package service

import (
	"errors"
	"time"

	"bybit_bot/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "bybit_bot",
		Subsystem: "exchange",
		Name:      "requests_total",
		Help:      "Bybit REST calls by operation and outcome",
	},
	[]string{"op", "outcome"},
)

var requestLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "bybit_bot",
		Subsystem: "exchange",
		Name:      "request_duration_seconds",
		Help:      "Bybit REST call latency",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"op"},
)

func outcome(err error) string {
	var (
		te *TransportError
		ee *ExchangeError
		de *DataShapeError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &te):
		return "transport"
	case errors.As(err, &ee):
		return "exchange"
	case errors.As(err, &de):
		return "data_shape"
	default:
		return "other"
	}
}

// finish пишет метрики и лог. Ошибка наружу уходит значением.
func finish(op string, started time.Time, err error) {
	requestLatency.WithLabelValues(op).Observe(time.Since(started).Seconds())
	requestsTotal.WithLabelValues(op, outcome(err)).Inc()
	if err != nil {
		logger.Error("bybit %s failed: %v", op, err)
	}
}
