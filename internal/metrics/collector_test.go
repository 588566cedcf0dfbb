package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsAttempts(t *testing.T) {
	c := NewCollector("slug")

	c.ObserveAttempt("pollinations-flux", "failure", 2*time.Second)
	c.ObserveAttempt("pollinations-flux", "failure", time.Second)
	c.ObserveAttempt("huggingface", "skipped", 0)
	c.ObserveGeneration("", "exhausted")
	c.ObserveGeneration("pollinations-turbo", "success")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.backendAttempts.WithLabelValues("pollinations-flux", "failure")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.backendAttempts.WithLabelValues("huggingface", "skipped")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.generations.WithLabelValues("none", "exhausted")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.generations.WithLabelValues("pollinations-turbo", "success")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.backendDuration))
}

func TestCollectorHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("slug")
	c.ObserveUpload("accepted", 2048)
	c.ObserveUpload("missing", 0)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `slug_uploads_total{result="accepted"} 1`)
	assert.Contains(t, string(body), `slug_uploads_total{result="missing"} 1`)
	assert.Contains(t, string(body), "slug_upload_size_bytes_count 1")
	assert.Contains(t, string(body), "go_goroutines")
}
