package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Game metric names
const (
	MetricNameLeaderboardCache    = "digger_leaderboard_cache_lookups_total"
	MetricNameSnapshotSave        = "digger_snapshot_save_duration_seconds"
	MetricNameGlobalClicks        = "digger_global_clicks"
	MetricNameActivitiesPosted    = "digger_activities_posted_total"
	MetricNameRateLimited         = "digger_rate_limited_total"
	MetricNameStoreOpDuration     = "digger_store_operation_duration_seconds"
	MetricNameStoreOpErrors       = "digger_store_operation_errors_total"
	MetricNameGoalRollovers       = "digger_goal_rollovers_total"
	MetricNameMaintenanceFailures = "digger_maintenance_failures_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Game metric help text
const (
	HelpTextLeaderboardCache    = "Leaderboard view lookups by cache result"
	HelpTextSnapshotSave        = "Time to persist a snapshot and update rankings"
	HelpTextGlobalClicks        = "Last observed value of the global click counter"
	HelpTextActivitiesPosted    = "Community feed entries posted, by activity type"
	HelpTextRateLimited         = "Requests refused by the per-player rate limiter"
	HelpTextStoreOpDuration     = "Key-value store operation latency in seconds"
	HelpTextStoreOpErrors       = "Key-value store operations that failed"
	HelpTextGoalRollovers       = "Daily goal archives written"
	HelpTextMaintenanceFailures = "Background maintenance jobs that failed, by job"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelResult = "result"
	LabelOp     = "op"
	LabelJob    = "job"
)

// Label values
const (
	ResultHit     = "hit"
	ResultMiss    = "miss"
	PathUnmatched = "unmatched"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets range from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// StoreLatencyBuckets are tighter; most store calls are sub-millisecond in memory
var StoreLatencyBuckets = []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .5, 1}
