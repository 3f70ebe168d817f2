package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackCounters(t *testing.T) {
	m := New()
	m.FeedbackProcessed("Positive", 16)
	m.FeedbackProcessed("Positive", 2)
	m.FeedbackProcessed("Negative", -13)
	m.FeedbackFailed("user_not_found")
	m.RatingConflict()
	m.ObserveClassification(40 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.feedbackProcessed.WithLabelValues("Positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feedbackProcessed.WithLabelValues("Negative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.feedbackFailures.WithLabelValues("user_not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ratingConflicts))
	assert.Equal(t, uint64(3), sampleCount(t, m.eloChange))
	assert.Equal(t, 5.0, sampleSum(t, m.eloChange))
	assert.Equal(t, uint64(1), sampleCount(t, m.classificationDuration))
}

func histogram(t *testing.T, h prometheus.Histogram) *dto.Histogram {
	t.Helper()
	var pb dto.Metric
	require.NoError(t, h.Write(&pb))
	return pb.GetHistogram()
}

func sampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	return histogram(t, h).GetSampleCount()
}

func sampleSum(t *testing.T, h prometheus.Histogram) float64 {
	return histogram(t, h).GetSampleSum()
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/feedback/{username}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", m.Handler())

	for _, name := range []string{"alice", "bob"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedback/"+name, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/feedback/{username}", "200")))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `tukerank_http_requests_total{method="GET",route="/feedback/{username}",status_code="200"} 2`))
}
