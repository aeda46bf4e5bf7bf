package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/GardenKeeper_Go/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for a dashboard
type AdminMetricsResponse struct {
	HTTP   HTTPMetrics   `json:"http"`
	Events EventMetrics  `json:"events"`
	Garden GardenMetrics `json:"garden"`
	Stream StreamMetrics `json:"stream"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type GardenMetrics struct {
	Polls             float64            `json:"polls"`
	PollErrors        float64            `json:"poll_errors"`
	AvgPollMs         float64            `json:"avg_poll_ms"`
	DecodeFailures    float64            `json:"decode_failures"`
	SnapshotsWritten  float64            `json:"snapshots_written"`
	WatchedPlots      float64            `json:"watched_plots"`
	ReadyCells        float64            `json:"ready_cells"`
	TransitionsByType map[string]float64 `json:"transitions_by_type"`
	ChainCallErrors   map[string]float64 `json:"chain_call_errors"`
}

type StreamMetrics struct {
	ClientCount int `json:"client_count"`
}

// ClientCounter reports connected stream clients
type ClientCounter interface {
	ClientCount() int
}

// AdminMetricsHandler summarises the Prometheus registry as JSON
type AdminMetricsHandler struct {
	gatherer prometheus.Gatherer
	clients  ClientCounter
}

// NewAdminMetricsHandler creates a new admin metrics handler
func NewAdminMetricsHandler(gatherer prometheus.Gatherer, clients ClientCounter) *AdminMetricsHandler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &AdminMetricsHandler{gatherer: gatherer, clients: clients}
}

// HandleGetMetrics returns JSON-formatted metrics
// @Summary Metrics summary
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		respondServiceError(w, r, err, "gather_metrics", ErrMsgMetricsFailed)
		return
	}
	if h.clients != nil {
		resp.Stream.ClientCount = h.clients.ClientCount()
	}
	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{RequestsTotalByStatus: make(map[string]float64)},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
		Garden: GardenMetrics{
			TransitionsByType: make(map[string]float64),
			ChainCallErrors:   make(map[string]float64),
		},
	}

	for _, mf := range families {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			sumByLabel(mf, metrics.LabelStatus, resp.HTTP.RequestsTotalByStatus)
		case metrics.MetricNameHTTPRequestDuration:
			var count uint64
			var sum float64
			merged := &dto.Histogram{}
			for _, m := range mf.GetMetric() {
				if hist := m.GetHistogram(); hist != nil {
					count += hist.GetSampleCount()
					sum += hist.GetSampleSum()
					mergeBuckets(merged, hist)
				}
			}
			if count > 0 {
				resp.HTTP.AvgLatencyMs = sum / float64(count) * 1000
				merged.SampleCount = &count
				resp.HTTP.P95LatencyMs = estimateQuantile(merged, 0.95) * 1000
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			resp.HTTP.InFlight = sumValues(mf)
		case metrics.MetricNameEventsPublished:
			sumByLabel(mf, metrics.LabelType, resp.Events.PublishedTotalByType)
		case metrics.MetricNameEventHandlerErrors:
			sumByLabel(mf, metrics.LabelType, resp.Events.HandlerErrorsByType)
		case metrics.MetricNamePollsTotal:
			resp.Garden.Polls = sumValues(mf)
		case metrics.MetricNamePollErrors:
			resp.Garden.PollErrors = sumValues(mf)
		case metrics.MetricNamePollDuration:
			for _, m := range mf.GetMetric() {
				if hist := m.GetHistogram(); hist != nil && hist.GetSampleCount() > 0 {
					resp.Garden.AvgPollMs = hist.GetSampleSum() / float64(hist.GetSampleCount()) * 1000
				}
			}
		case metrics.MetricNameDecodeFailures:
			resp.Garden.DecodeFailures = sumValues(mf)
		case metrics.MetricNameSnapshotsWritten:
			resp.Garden.SnapshotsWritten = sumValues(mf)
		case metrics.MetricNameWatchedPlots:
			resp.Garden.WatchedPlots = sumValues(mf)
		case metrics.MetricNameReadyCells:
			resp.Garden.ReadyCells = sumValues(mf)
		case metrics.MetricNameCellTransitions:
			sumByLabel(mf, metrics.LabelType, resp.Garden.TransitionsByType)
		case metrics.MetricNameChainCallErrors:
			sumByLabel(mf, metrics.LabelMethod, resp.Garden.ChainCallErrors)
		}
	}

	return resp, nil
}

// sumValues adds every counter or gauge sample of a family
func sumValues(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue() + m.GetGauge().GetValue()
	}
	return total
}

func sumByLabel(mf *dto.MetricFamily, label string, into map[string]float64) {
	for _, m := range mf.GetMetric() {
		if v := getLabelValue(m, label); v != "" {
			into[v] += m.GetCounter().GetValue() + m.GetGauge().GetValue()
		}
	}
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// mergeBuckets adds src's cumulative bucket counts into dst; every series of
// a family shares the same bucket layout
func mergeBuckets(dst, src *dto.Histogram) {
	if len(dst.Bucket) == 0 {
		for _, b := range src.GetBucket() {
			upper := b.GetUpperBound()
			count := b.GetCumulativeCount()
			dst.Bucket = append(dst.Bucket, &dto.Bucket{UpperBound: &upper, CumulativeCount: &count})
		}
		return
	}
	for i, b := range src.GetBucket() {
		if i < len(dst.Bucket) {
			*dst.Bucket[i].CumulativeCount += b.GetCumulativeCount()
		}
	}
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	target := float64(totalCount) * quantile
	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		if float64(bucket.GetCumulativeCount()) >= target {
			return bucket.GetUpperBound()
		}
	}

	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
