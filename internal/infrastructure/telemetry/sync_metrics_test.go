package telemetry_test

import (
	"testing"
	"time"

	"github.com/leadlane/backend/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSyncMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := telemetry.NewSyncMetrics(reg)

	m.ObserveSync("hubspot", "company", "", 10*time.Millisecond)
	m.ObserveSync("hubspot", "company", "", 20*time.Millisecond)
	m.ObserveSync("hubspot", "company", "hubspot_rate_limited", time.Millisecond)
	m.IncWebhookEvent("hubspot", "processed")
	m.IncTokenRefresh("hubspot", false)
	m.IncDroppedEvent()
	m.IncHTTPStatus("/health", 200)

	families, err := reg.Gather()
	assert.NoError(t, err)
	assert.Len(t, families, 6)

	assert.Equal(t, 2, testutil.CollectAndCount(m.SyncResultsCollector()))
	assert.InDelta(t, 2, testutil.ToFloat64(m.SyncResultsCollector().WithLabelValues("hubspot", "company", "ok")), 0)
}

func TestSyncMetrics_NilIsNoop(t *testing.T) {
	var m *telemetry.SyncMetrics
	assert.NotPanics(t, func() {
		m.ObserveSync("hubspot", "company", "", time.Second)
		m.IncWebhookEvent("hubspot", "failed")
		m.IncTokenRefresh("hubspot", true)
		m.IncDroppedEvent()
		m.IncHTTPStatus("/", 500)
	})
}
