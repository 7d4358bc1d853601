package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"resumebuilder/internal/config"
)

func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := NewMetrics(provider.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func counterTotal(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecordScore(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordScore(ctx, 85, "excellent")
	m.RecordScore(ctx, 45, "needs_work")

	data := collect(t, reader)
	assert.Equal(t, int64(2), counterTotal(t, data["resume.score.computations"]))

	hist, ok := data["resume.score.overall"].(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

func TestTrackAIOperation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	result := m.TrackAIOperation(ctx, "summary", func(context.Context) *AIOperationResult {
		return &AIOperationResult{TokenUsage: &TokenUsage{InputTokens: 10, OutputTokens: 20, TotalTokens: 30}}
	})
	assert.Empty(t, result.FailureKind)

	m.TrackAIOperation(ctx, "experience", func(context.Context) *AIOperationResult {
		return &AIOperationResult{FailureKind: "rate_limited", Error: errors.New("429")}
	})

	data := collect(t, reader)
	assert.Equal(t, int64(2), counterTotal(t, data["resume.enhance.requests"]))
	assert.Equal(t, int64(1), counterTotal(t, data["resume.enhance.failures"]))
	assert.Contains(t, data, "resume.enhance.duration")
	assert.Contains(t, data, "resume.ai.tokens")
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordScore(ctx, 10, "needs_work")
		m.RecordStoreFailure(ctx, "put")
		m.RecordRateLimitHit(ctx, "ip")
	})

	called := false
	result := m.TrackAIOperation(ctx, "summary", func(context.Context) *AIOperationResult {
		called = true
		return nil
	})
	assert.True(t, called)
	require.NotNil(t, result)
}

func TestCountersRecordAttributes(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordStoreFailure(ctx, "put")
	m.RecordStoreFailure(ctx, "get")
	m.RecordRateLimitHit(ctx, "ip")

	data := collect(t, reader)
	sum := data["resume.store.failures"].(metricdata.Sum[int64])
	assert.Len(t, sum.DataPoints, 2)
	assert.Equal(t, int64(1), counterTotal(t, data["resume.ratelimit.hits"]))
}

func TestDisabledManager(t *testing.T) {
	m, err := NewManager(config.ObservabilityConfig{Enabled: false}, "test", nil)
	require.NoError(t, err)

	assert.False(t, m.Enabled())
	assert.Nil(t, m.Metrics())
	assert.Equal(t, http.DefaultTransport, m.HTTPTransport(nil))

	handler := m.HTTPMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NoError(t, m.Shutdown(context.Background()))
}

func TestEnabledManagerWithManualReader(t *testing.T) {
	m, err := NewManager(config.ObservabilityConfig{
		Enabled:     true,
		ServiceName: "resumebuilder-test",
		SampleRate:  1,
		Tracing:     config.TracingConfig{Exporter: config.ExporterNone},
	}, "test", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	assert.True(t, m.Enabled())
	require.NotNil(t, m.Metrics())
	assert.NotEqual(t, http.DefaultTransport, m.HTTPTransport(nil))
}
