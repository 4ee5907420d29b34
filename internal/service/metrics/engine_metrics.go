package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
)

var (
	once sync.Once

	signalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradepulse",
			Subsystem: "engine",
			Name:      "signals_total",
			Help:      "Consolidated signals by strategy and action",
		},
		[]string{"strategy", "action"},
	)

	backtestSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tradepulse",
			Subsystem: "engine",
			Name:      "backtest_seconds",
			Help:      "Backtest run duration by strategy",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"strategy"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tradepulse",
			Subsystem: "engine",
			Name:      "errors_total",
			Help:      "Errors by kind",
		},
		[]string{"kind"},
	)

	lastClose = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "tradepulse",
			Subsystem: "engine",
			Name:      "last_close",
			Help:      "Last observed close price per ticker",
		},
		[]string{"ticker"},
	)

	opLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tradepulse",
			Subsystem: "engine",
			Name:      "operation_seconds",
			Help:      "Latency of engine operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

// Register installs the engine collectors; safe to call more than once.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(signalsTotal, backtestSeconds, errorsTotal, lastClose, opLatency)
	})
}

// PromMetrics implements the domain Metrics interface on Prometheus.
type PromMetrics struct{}

func NewPromMetrics() *PromMetrics {
	Register()
	return &PromMetrics{}
}

func (PromMetrics) RecordSignal(strategy string, action models.SignalAction) {
	signalsTotal.WithLabelValues(strategy, string(action)).Inc()
}

func (PromMetrics) RecordBacktest(strategy string, seconds float64) {
	backtestSeconds.WithLabelValues(strategy).Observe(seconds)
}

func (PromMetrics) RecordError(kind string) {
	errorsTotal.WithLabelValues(kind).Inc()
}

func (PromMetrics) RecordLastClose(ticker string, price float64) {
	lastClose.WithLabelValues(ticker).Set(price)
}

func (PromMetrics) RecordLatency(op string, seconds float64) {
	opLatency.WithLabelValues(op).Observe(seconds)
}

var _ domrepo.Metrics = PromMetrics{}
