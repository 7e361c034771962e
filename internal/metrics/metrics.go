package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Forum
	TopicsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_topics_total",
			Help: "Topic lifecycle events",
		},
		[]string{"action"}, // created|updated|closed
	)
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_messages_total",
			Help: "Message events",
		},
		[]string{"action"}, // added|removed
	)

	// Auth
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"}, // success|failure
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

// Init registers the collectors with the default registry. Safe to call more
// than once, which the router tests do.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal, RequestLatency, TopicsTotal, MessagesTotal, LoginsTotal)
	})
}
