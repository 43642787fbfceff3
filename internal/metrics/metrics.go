package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal  *prometheus.CounterVec
	votesRecordedTotal prometheus.Counter
	dbConnectAttempts  *prometheus.CounterVec
	registerOnce       sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voting",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the voting API.",
		}, []string{"method", "path", "status"})

		votesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "voting",
			Name:      "votes_recorded_total",
			Help:      "Votes committed to the store.",
		})

		dbConnectAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voting",
			Name:      "db_connect_attempts_total",
			Help:      "Database connection attempts, by result.",
		}, []string{"result"})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

// IncVote counts one committed vote. Choices are free text, so they are not
// used as a label.
func IncVote() {
	if votesRecordedTotal == nil {
		return
	}
	votesRecordedTotal.Inc()
}

// IncConnectAttempt records one connection attempt; result is "success" or "failure".
func IncConnectAttempt(result string) {
	if dbConnectAttempts == nil {
		return
	}
	dbConnectAttempts.WithLabelValues(result).Inc()
}
