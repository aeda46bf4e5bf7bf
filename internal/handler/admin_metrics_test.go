package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GardenKeeper_Go/internal/metrics"
)

type fixedClients int

func (c fixedClients) ClientCount() int { return int(c) }

func TestAdminMetricsHandler(t *testing.T) {
	reg := prometheus.NewRegistry()

	polls := prometheus.NewCounter(prometheus.CounterOpts{Name: metrics.MetricNamePollsTotal})
	polls.Add(4)
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metrics.MetricNameHTTPRequestsTotal},
		[]string{metrics.LabelMethod, metrics.LabelPath, metrics.LabelStatus})
	requests.WithLabelValues("GET", "/seeds", "200").Add(3)
	requests.WithLabelValues("GET", "/plot", "200").Add(2)
	requests.WithLabelValues("GET", "/plot", "503").Inc()
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    metrics.MetricNameHTTPRequestDuration,
		Buckets: []float64{0.01, 0.1, 1},
	}, []string{metrics.LabelMethod, metrics.LabelPath})
	for i := 0; i < 19; i++ {
		latency.WithLabelValues("GET", "/seeds").Observe(0.005)
	}
	latency.WithLabelValues("GET", "/plot").Observe(0.5)
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{Name: metrics.MetricNameCellTransitions},
		[]string{metrics.LabelType, metrics.LabelSeed})
	transitions.WithLabelValues("cell.ready", "1").Inc()
	transitions.WithLabelValues("cell.ready", "2").Inc()
	reg.MustRegister(polls, requests, latency, transitions)

	h := NewAdminMetricsHandler(reg, fixedClients(2))
	rec := httptest.NewRecorder()
	h.HandleGetMetrics(rec, httptest.NewRequest(http.MethodGet, "/admin/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[AdminMetricsResponse](t, rec)
	assert.Equal(t, 4.0, resp.Garden.Polls)
	assert.Equal(t, 5.0, resp.HTTP.RequestsTotalByStatus["200"])
	assert.Equal(t, 1.0, resp.HTTP.RequestsTotalByStatus["503"])
	assert.Equal(t, 2.0, resp.Garden.TransitionsByType["cell.ready"])
	assert.Equal(t, 10.0, resp.HTTP.P95LatencyMs, "19 of 20 requests fall in the 10ms bucket")
	assert.InDelta(t, (19*0.005+0.5)/20*1000, resp.HTTP.AvgLatencyMs, 0.001)
	assert.Equal(t, 2, resp.Stream.ClientCount)
}
