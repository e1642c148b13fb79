// Package metrics holds the Prometheus collectors of the console.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "trueconf_console"

// Import row outcomes.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

// Metrics groups the console collectors. A nil *Metrics records nothing.
type Metrics struct {
	httpRequests      *prometheus.HistogramVec
	directoryRequests *prometheus.HistogramVec
	importRows        *prometheus.CounterVec
	importRuns        prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		httpRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_requests",
			Help:      "Duration of console HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		directoryRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "directory_requests",
			Help:      "Duration of TrueConf directory API calls in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		importRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Imported rows by outcome.",
		}, []string{"outcome"}),
		importRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_runs_total",
			Help:      "Completed bulk import runs.",
		}),
	}

	for _, c := range []prometheus.Collector{m.httpRequests, m.directoryRequests, m.importRows, m.importRuns} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// ObserveHTTPRequest records one handled console request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// ObserveDirectoryRequest records one directory API call. Status 0 means a transport failure.
func (m *Metrics) ObserveDirectoryRequest(operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.directoryRequests.WithLabelValues(operation, label).Observe(elapsed.Seconds())
}

// IncImportRow counts one processed import row.
func (m *Metrics) IncImportRow(outcome string) {
	if m == nil {
		return
	}
	m.importRows.WithLabelValues(outcome).Inc()
}

// IncImportRun counts one finished import run.
func (m *Metrics) IncImportRun() {
	if m == nil {
		return
	}
	m.importRuns.Inc()
}
