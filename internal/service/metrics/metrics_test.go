package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProcess(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewMetrics(registry)
	require.NoError(t, err)

	m.RecordProcess("image", "success", 3, 120*time.Millisecond)
	m.RecordProcess("video", "success", 0, 300*time.Millisecond)
	m.RecordProcess("image", "unreadable_media", 0, time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.processedTotal.WithLabelValues("image", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.processedTotal.WithLabelValues("video", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.processedTotal.WithLabelValues("image", "unreadable_media")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.lastCount))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.visitorsTotal))
}

func TestRecordReport(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewMetrics(registry)
	require.NoError(t, err)

	m.RecordReport("pdf", "success")
	m.RecordReport("pdf", "success")
	m.RecordReport("csv", "unsupported_report_type")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.reportsTotal.WithLabelValues("pdf", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.reportsTotal.WithLabelValues("csv", "unsupported_report_type")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordProcess("image", "success", 1, time.Second)
		m.RecordReport("pdf", "success")
	})
}

func TestDuplicateRegistrationFails(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewMetrics(registry)
	require.NoError(t, err)

	_, err = NewMetrics(registry)
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewMetrics(registry)
	require.NoError(t, err)
	m.RecordProcess("image", "success", 2, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "occupancy_requests_total")
	assert.Contains(t, string(body), "occupancy_last_count 2")
}
