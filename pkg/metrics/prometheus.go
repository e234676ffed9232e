// Package metrics provides Prometheus metrics for the candidate record
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Record store
	recordsTotal     prometheus.Gauge
	submissions      *prometheus.CounterVec
	deletions        prometheus.Counter
	validationFailed prometheus.Counter

	// Snapshot persistence
	snapshotSaves       prometheus.Counter
	snapshotErrors      prometheus.Counter
	snapshotSaveLatency prometheus.Histogram

	// Push channel / reconciliation
	pushQueueSize   prometheus.Gauge
	pushProcessed   *prometheus.CounterVec
	pushDropped     *prometheus.CounterVec
	pushLatency     prometheus.Histogram
	autofillApplied prometheus.Counter
	statusApplied   prometheus.Counter
	statusUnmatched prometheus.Counter

	// Notifications
	busPublished   *prometheus.CounterVec
	busDropped     *prometheus.CounterVec
	remindersFired *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "candidesk",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	factory := promauto.With(m.registry)

	m.recordsTotal = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "records_total",
		Help: "Number of candidate records in the store.",
	})
	m.submissions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "submissions_total",
		Help: "Successful draft submissions by task type.",
	}, []string{"task_type"})
	m.deletions = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "deletions_total",
		Help: "Records removed from the store.",
	})
	m.validationFailed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "validation_failures_total",
		Help: "Submissions blocked by the validation engine.",
	})

	m.snapshotSaves = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_saves_total",
		Help: "Successful snapshot writes.",
	})
	m.snapshotErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_errors_total",
		Help: "Failed snapshot writes.",
	})
	m.snapshotSaveLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "snapshot_save_duration_ms",
		Help:    "Snapshot write latency in milliseconds.",
		Buckets: m.histogramBuckets,
	})

	m.pushQueueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "push_queue_size",
		Help: "Messages buffered in the push-channel queue.",
	})
	m.pushProcessed = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "push_processed_total",
		Help: "Push messages applied by kind.",
	}, []string{"kind"})
	m.pushDropped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "push_dropped_total",
		Help: "Push messages dropped by reason.",
	}, []string{"reason"})
	m.pushLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "push_apply_duration_ms",
		Help:    "Reconciliation latency per push message in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.autofillApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "autofill_patches_applied_total",
		Help: "Autofill patches merged into the draft.",
	})
	m.statusApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "status_updates_applied_total",
		Help: "Status updates matched to a record and applied.",
	})
	m.statusUnmatched = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "status_updates_unmatched_total",
		Help: "Status updates whose subject matched no record.",
	})

	m.busPublished = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "notifications_published_total",
		Help: "Notifications delivered to subscribers by kind.",
	}, []string{"kind"})
	m.busDropped = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "notifications_dropped_total",
		Help: "Notifications dropped for slow subscribers by kind.",
	}, []string{"kind"})
	m.remindersFired = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "reminders_fired_total",
		Help: "Interview reminders fired by lead time.",
	}, []string{"lead"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request latency in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Heap bytes currently allocated.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines",
		Help: "Number of live goroutines.",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "system_gc_pause_ms",
		Help:    "Average GC pause time in milliseconds.",
		Buckets: m.histogramBuckets,
	})
}

// GetRegistry returns the registry backing the global manager, for
// serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording through the global manager.

func UpdateRecordsTotal(n int)   { globalManager.recordsTotal.Set(float64(n)) }
func RecordSubmission(tt string) { globalManager.submissions.WithLabelValues(tt).Inc() }
func RecordDeletion()            { globalManager.deletions.Inc() }
func RecordValidationFailure()   { globalManager.validationFailed.Inc() }

func RecordSnapshotSave(ms float64) {
	globalManager.snapshotSaves.Inc()
	globalManager.snapshotSaveLatency.Observe(ms)
}
func RecordSnapshotError() { globalManager.snapshotErrors.Inc() }

func UpdatePushQueueSize(n int) { globalManager.pushQueueSize.Set(float64(n)) }
func RecordPushProcessed(kind string, ms float64) {
	globalManager.pushProcessed.WithLabelValues(kind).Inc()
	globalManager.pushLatency.Observe(ms)
}
func RecordPushDropped(reason string) { globalManager.pushDropped.WithLabelValues(reason).Inc() }
func RecordAutofillApplied()          { globalManager.autofillApplied.Inc() }
func RecordStatusApplied()            { globalManager.statusApplied.Inc() }
func RecordStatusUnmatched()          { globalManager.statusUnmatched.Inc() }

func RecordBusPublished(kind string) { globalManager.busPublished.WithLabelValues(kind).Inc() }
func RecordBusDropped(kind string)   { globalManager.busDropped.WithLabelValues(kind).Inc() }
func RecordReminderFired(lead string) {
	globalManager.remindersFired.WithLabelValues(lead).Inc()
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}
func RecordHTTPRequestDuration(endpoint, method string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(ms)
}

func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(n int)     { globalManager.systemGoroutineCount.Set(float64(n)) }
func RecordSystemGCPauseTime(ms float64)   { globalManager.systemGCPauseTime.Observe(ms) }
