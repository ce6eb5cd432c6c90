package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	// Registry holds every blogsvc collector plus the Go and process collectors
	Registry = prometheus.NewRegistry()

	// AuthOperations counts orchestrator operations by outcome
	AuthOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blogsvc",
		Name:      "auth_operations_total",
		Help:      "Authentication operations by operation and result.",
	}, []string{"operation", "result"})

	// MailDeliveries counts detached email sends
	MailDeliveries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blogsvc",
		Name:      "mail_deliveries_total",
		Help:      "Outgoing emails by purpose and result.",
	}, []string{"purpose", "result"})

	// HTTPRequests observes request latency per route
	HTTPRequests = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blogsvc",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method, route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(
		AuthOperations,
		MailDeliveries,
		HTTPRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Outcome maps a boolean status to a result label
func Outcome(ok bool) string {
	if ok {
		return ResultSuccess
	}
	return ResultFailure
}

// ObserveAuth counts one orchestrator operation
func ObserveAuth(operation string, ok bool) {
	AuthOperations.WithLabelValues(operation, Outcome(ok)).Inc()
}

// ObserveMail counts one email delivery attempt
func ObserveMail(purpose string, ok bool) {
	MailDeliveries.WithLabelValues(purpose, Outcome(ok)).Inc()
}

// Handler exposes Registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
