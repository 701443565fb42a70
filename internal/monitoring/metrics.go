// Package monitoring exposes engine statistics as Prometheus metrics.
// An Exporter polls the engine's stats endpoint and mirrors the values
// into gauges served over /metrics.
package monitoring

import (
	"errors"
	"net"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	httpx "github.com/stampede-dev/stampede/internal/http"
)

// Metrics holds the gauge and counter families the exporter updates.
type Metrics struct {
	Users                  prometheus.Gauge
	ScheduledUsers         prometheus.Gauge
	RequestsPerSecond      prometheus.Gauge
	FailuresPerSecond      prometheus.Gauge
	ResponseTimePercentile *prometheus.GaugeVec
	RequestCount           *prometheus.CounterVec
	ErrorCount             *prometheus.CounterVec
	PollFailures           prometheus.Counter
}

// NewMetrics registers the metric families with a registry. Pass nil to
// register with the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		Users: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stampede_users",
			Help: "Number of users reported by the engine",
		}),
		ScheduledUsers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stampede_scheduled_users",
			Help: "Number of users the active load profile schedules right now",
		}),
		RequestsPerSecond: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stampede_requests_per_second",
			Help: "Requests per second",
		}),
		FailuresPerSecond: factory.NewGauge(prometheus.GaugeOpts{
			Name: "stampede_failures_per_second",
			Help: "Failures per second",
		}),
		ResponseTimePercentile: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stampede_response_time_percentile",
			Help: "Response time percentile in milliseconds",
		}, []string{"percentile"}),
		RequestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stampede_request_count",
			Help: "Number of requests made",
		}, []string{"method", "endpoint", "status"}),
		ErrorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stampede_error_count",
			Help: "Number of request errors",
		}, []string{"method", "endpoint", "error_type"}),
		PollFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "stampede_exporter_poll_failures_total",
			Help: "Number of failed polls of the engine stats endpoint",
		}),
	}
}

// ObserveRequest records one completed request in the counter families.
// A statusCode of 0 means the request failed before a response arrived.
func (m *Metrics) ObserveRequest(method, endpoint string, statusCode int, err error) {
	if err != nil {
		m.ErrorCount.WithLabelValues(method, endpoint, errorType(err)).Inc()
		return
	}
	m.RequestCount.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
}

// Observer adapts ObserveRequest to the HTTP client's callback shape.
func (m *Metrics) Observer() httpx.RequestObserver {
	return func(method, path string, statusCode int, err error) {
		m.ObserveRequest(method, path, statusCode, err)
	}
}

func errorType(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "transport"
}

// percentileKeys are the percentile labels mirrored from the engine.
var percentileKeys = []string{"50", "66", "75", "80", "90", "95", "98", "99", "100"}
