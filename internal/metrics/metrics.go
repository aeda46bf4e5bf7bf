package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Chain Metrics
var (
	ChainCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameChainCallDuration,
			Help:    HelpTextChainCallDuration,
			Buckets: RPCLatencyBuckets,
		},
		[]string{LabelMethod},
	)

	ChainCallErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChainCallErrors,
			Help: HelpTextChainCallErrors,
		},
		[]string{LabelMethod},
	)
)

// Garden Metrics
var (
	PollsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePollsTotal,
			Help: HelpTextPollsTotal,
		},
	)

	PollErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePollErrors,
			Help: HelpTextPollErrors,
		},
	)

	PollDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNamePollDuration,
			Help:    HelpTextPollDuration,
			Buckets: RPCLatencyBuckets,
		},
	)

	DecodeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDecodeFailures,
			Help: HelpTextDecodeFailures,
		},
	)

	CellTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCellTransitions,
			Help: HelpTextCellTransitions,
		},
		[]string{LabelType, LabelSeed},
	)

	ReadyCells = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameReadyCells,
			Help: HelpTextReadyCells,
		},
		[]string{LabelPlot},
	)

	WatchedPlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWatchedPlots,
			Help: HelpTextWatchedPlots,
		},
	)

	SnapshotsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotsWritten,
			Help: HelpTextSnapshotsWritten,
		},
	)
)
