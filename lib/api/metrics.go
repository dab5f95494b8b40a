package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts calls per operation and envelope code. Transport and protocol
// failures are recorded with the code labels "transport" and "protocol".
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "etherpad",
				Subsystem: "client",
				Name:      "calls_total",
				Help:      "Number of Etherpad API calls by operation and response code",
			},
			[]string{"operation", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "etherpad",
				Subsystem: "client",
				Name:      "call_duration_seconds",
				Help:      "Duration of Etherpad API calls",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	if err := reg.Register(m.calls); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		reg.Unregister(m.calls)
		return nil, err
	}
	return m, nil
}

func (m *Metrics) observe(operation string, code string, took time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(operation, code).Inc()
	m.duration.WithLabelValues(operation).Observe(took.Seconds())
}

func codeLabel(code int) string {
	return strconv.Itoa(code)
}
