package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RateMetrics covers rate fetching and connectivity.
type RateMetrics struct {
	FetchesTotal  *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec
	Connected     prometheus.Gauge
}

// ObserveFetch records one finished fetch. outcome is "success" or "error".
func (m *RateMetrics) ObserveFetch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.FetchesTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *RateMetrics) SetConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.Connected.Set(1)
		return
	}
	m.Connected.Set(0)
}

// NewRateMetrics registers the collectors with reg.
func NewRateMetrics(reg prometheus.Registerer) *RateMetrics {
	factory := promauto.With(reg)
	return &RateMetrics{
		FetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxconvert_rate_fetches_total",
				Help: "Exchange rate fetches by outcome",
			},
			[]string{"outcome"},
		),
		FetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxconvert_rate_fetch_duration_seconds",
				Help:    "Exchange rate fetch latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 9), // 50ms .. 12.8s
			},
			[]string{"outcome"},
		),
		Connected: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "fxconvert_connected",
				Help: "1 when the rates provider is reachable",
			},
		),
	}
}
