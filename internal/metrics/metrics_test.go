package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()

	m, err := New(reg)
	require.NoError(t, err)

	m.ObserveHTTPRequest("GET", "/", 200, 10*time.Millisecond)
	m.ObserveDirectoryRequest("fetch_by_id", 404, time.Millisecond)
	m.ObserveDirectoryRequest("create_user", 0, time.Millisecond)
	m.IncImportRow(OutcomeSucceeded)
	m.IncImportRow(OutcomeFailed)
	m.IncImportRow(OutcomeFailed)
	m.IncImportRun()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"trueconf_console_http_requests",
		"trueconf_console_directory_requests",
		"trueconf_console_import_rows_total",
		"trueconf_console_import_runs_total",
	}, names)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.importRows.WithLabelValues(OutcomeFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.importRuns))
	assert.Equal(t, 2, testutil.CollectAndCount(m.directoryRequests))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDirectoryRequest("search", 200, time.Second)
		m.IncImportRow(OutcomeSucceeded)
		m.IncImportRun()
	})
}
