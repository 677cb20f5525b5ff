package serving

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// requestsMonitor holds the metrics of the served requests
type requestsMonitor struct {
	// requests counts by pattern and status code
	requests *prometheus.CounterVec
	// duration by pattern
	duration *prometheus.HistogramVec
}

// newRequestsMonitor creates and registers request metrics
func newRequestsMonitor(registerer prometheus.Registerer) (*requestsMonitor, error) {
	if registerer == nil {
		return nil, nil
	}

	m := &requestsMonitor{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snt",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Served requests",
		}, []string{"pattern", "code"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "snt",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"pattern"}),
	}

	if err := errors.Join(registerer.Register(m.requests), registerer.Register(m.duration)); err != nil {
		return nil, err
	}

	return m, nil
}

// observe records a served request, no op for a nil monitor
func (m *requestsMonitor) observe(pattern string, code int, start time.Time) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(pattern, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
}
