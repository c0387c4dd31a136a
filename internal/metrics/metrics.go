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

// Game Metrics
var (
	LeaderboardCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLeaderboardCache,
			Help: HelpTextLeaderboardCache,
		},
		[]string{LabelResult},
	)

	SnapshotSaveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameSnapshotSave,
			Help:    HelpTextSnapshotSave,
			Buckets: HTTPLatencyBuckets,
		},
	)

	GlobalClicks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameGlobalClicks,
			Help: HelpTextGlobalClicks,
		},
	)

	ActivitiesPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActivitiesPosted,
			Help: HelpTextActivitiesPosted,
		},
		[]string{LabelType},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRateLimited,
			Help: HelpTextRateLimited,
		},
	)

	GoalRollovers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameGoalRollovers,
			Help: HelpTextGoalRollovers,
		},
	)

	MaintenanceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMaintenanceFailures,
			Help: HelpTextMaintenanceFailures,
		},
		[]string{LabelJob},
	)
)

// Store Metrics
var (
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameStoreOpDuration,
			Help:    HelpTextStoreOpDuration,
			Buckets: StoreLatencyBuckets,
		},
		[]string{LabelOp},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreOpErrors,
			Help: HelpTextStoreOpErrors,
		},
		[]string{LabelOp},
	)
)
