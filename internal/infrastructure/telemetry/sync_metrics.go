package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "leadlane_crm"

// SyncMetrics holds the Prometheus collectors of the sync pipeline.
// A nil *SyncMetrics is valid and records nothing.
type SyncMetrics struct {
	syncResults     *prometheus.CounterVec
	syncDuration    *prometheus.HistogramVec
	webhookEvents   *prometheus.CounterVec
	tokenRefreshes  *prometheus.CounterVec
	droppedEvents   prometheus.Counter
	httpStatusCodes *prometheus.CounterVec
}

// NewSyncMetrics registers the collectors on reg.
// Passing prometheus.DefaultRegisterer exposes them on the default /metrics handler.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	factory := promauto.With(reg)
	return &SyncMetrics{
		syncResults: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sync_results_total",
			Help:      "Outbound sync attempts by crm system, object type and result code",
		}, []string{"crm_system", "object_type", "code"}),
		syncDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "sync_duration_seconds",
			Help:      "Time spent in one outbound sync attempt",
			Buckets:   prometheus.DefBuckets,
		}, []string{"crm_system", "object_type"}),
		webhookEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "webhook_events_total",
			Help:      "Inbound webhook events by crm system and terminal status",
		}, []string{"crm_system", "status"}),
		tokenRefreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "token_refreshes_total",
			Help:      "OAuth token refresh attempts by crm system and outcome",
		}, []string{"crm_system", "outcome"}),
		droppedEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dispatcher_dropped_events_total",
			Help:      "Domain events dropped because the dispatcher queue was full",
		}),
		httpStatusCodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_status_code_total",
			Help:      "HTTP responses by route and status code",
		}, []string{"route", "status_code"}),
	}
}

// ObserveSync records one sync attempt. An empty code means success.
func (m *SyncMetrics) ObserveSync(system, objectType, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if code == "" {
		code = "ok"
	}
	m.syncResults.WithLabelValues(system, objectType, code).Inc()
	m.syncDuration.WithLabelValues(system, objectType).Observe(elapsed.Seconds())
}

// IncWebhookEvent counts one processed webhook event
func (m *SyncMetrics) IncWebhookEvent(system, status string) {
	if m == nil {
		return
	}
	m.webhookEvents.WithLabelValues(system, status).Inc()
}

// IncTokenRefresh counts a refresh attempt
func (m *SyncMetrics) IncTokenRefresh(system string, success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.tokenRefreshes.WithLabelValues(system, outcome).Inc()
}

// IncDroppedEvent counts an event rejected by a full dispatcher queue
func (m *SyncMetrics) IncDroppedEvent() {
	if m == nil {
		return
	}
	m.droppedEvents.Inc()
}

// IncHTTPStatus counts one HTTP response
func (m *SyncMetrics) IncHTTPStatus(route string, status int) {
	if m == nil {
		return
	}
	m.httpStatusCodes.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// SyncResultsCollector exposes the sync result counter for assertions
func (m *SyncMetrics) SyncResultsCollector() *prometheus.CounterVec {
	return m.syncResults
}
