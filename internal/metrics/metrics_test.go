package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CountsAndExposes(t *testing.T) {
	r := NewRegistry()
	r.IngestRuns.WithLabelValues("success").Inc()
	r.IngestRuns.WithLabelValues("success").Inc()
	r.IngestRuns.WithLabelValues("upstream_error").Inc()
	r.IngestedRecords.Set(3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.IngestRuns.WithLabelValues("success")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.IngestedRecords))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `purchase_ingest_runs_total{outcome="upstream_error"} 1`)
	assert.Contains(t, string(body), "purchase_ingested_records 3")
}

func TestNewRegistry_Independent(t *testing.T) {
	a := NewRegistry()
	b := NewRegistry()
	a.IngestedRecords.Set(5)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.IngestedRecords))
}
