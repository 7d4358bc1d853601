package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the custom instruments of the résumé builder
type Metrics struct {
	ScoreComputations metric.Int64Counter
	OverallScore      metric.Int64Histogram

	EnhanceRequests metric.Int64Counter
	EnhanceFailures metric.Int64Counter
	EnhanceDuration metric.Float64Histogram
	AITokens        metric.Int64Histogram

	StoreFailures metric.Int64Counter
	RateLimitHits metric.Int64Counter
}

// NewMetrics creates every instrument on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.ScoreComputations, err = meter.Int64Counter(
		"resume.score.computations",
		metric.WithDescription("Number of ATS score computations"),
	); err != nil {
		return nil, fmt.Errorf("failed to create score computations metric: %w", err)
	}

	if m.OverallScore, err = meter.Int64Histogram(
		"resume.score.overall",
		metric.WithDescription("Distribution of overall ATS scores"),
		metric.WithExplicitBucketBoundaries(20, 40, 60, 80, 100),
	); err != nil {
		return nil, fmt.Errorf("failed to create overall score metric: %w", err)
	}

	if m.EnhanceRequests, err = meter.Int64Counter(
		"resume.enhance.requests",
		metric.WithDescription("Content enhancement requests"),
	); err != nil {
		return nil, fmt.Errorf("failed to create enhance requests metric: %w", err)
	}

	if m.EnhanceFailures, err = meter.Int64Counter(
		"resume.enhance.failures",
		metric.WithDescription("Content enhancement failures by kind"),
	); err != nil {
		return nil, fmt.Errorf("failed to create enhance failures metric: %w", err)
	}

	if m.EnhanceDuration, err = meter.Float64Histogram(
		"resume.enhance.duration",
		metric.WithDescription("Time spent waiting for content enhancement"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create enhance duration metric: %w", err)
	}

	if m.AITokens, err = meter.Int64Histogram(
		"resume.ai.tokens",
		metric.WithDescription("Token usage reported by the enhancement provider"),
		metric.WithUnit("{token}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create token usage metric: %w", err)
	}

	if m.StoreFailures, err = meter.Int64Counter(
		"resume.store.failures",
		metric.WithDescription("Failed persistence reads and writes"),
	); err != nil {
		return nil, fmt.Errorf("failed to create store failures metric: %w", err)
	}

	if m.RateLimitHits, err = meter.Int64Counter(
		"resume.ratelimit.hits",
		metric.WithDescription("Requests rejected by the rate limiter"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return m, nil
}

// RecordScore counts a score computation and records its value
func (m *Metrics) RecordScore(ctx context.Context, overall int, band string) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("band", band))
	m.ScoreComputations.Add(ctx, 1, attrs)
	m.OverallScore.Record(ctx, int64(overall), attrs)
}

// TokenUsage is the token accounting of one provider call
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// AIOperationResult is what an instrumented enhancement call reports back
type AIOperationResult struct {
	// FailureKind is empty on success
	FailureKind string
	Error       error
	TokenUsage  *TokenUsage
}

// TrackAIOperation runs fn inside a span and records request, failure,
// duration and token metrics for it
func (m *Metrics) TrackAIOperation(ctx context.Context, operation string, fn func(context.Context) *AIOperationResult) *AIOperationResult {
	ctx, span := otel.Tracer("resumebuilder.ai").Start(ctx, "ai."+operation)
	defer span.End()

	start := time.Now()
	result := fn(ctx)
	if result == nil {
		result = &AIOperationResult{}
	}
	duration := time.Since(start)

	success := result.FailureKind == "" && result.Error == nil
	span.SetAttributes(
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	)
	if !success {
		span.SetAttributes(attribute.String("failure_kind", result.FailureKind))
		if result.Error != nil {
			span.RecordError(result.Error)
		}
		span.SetStatus(codes.Error, result.FailureKind)
	}
	if usage := result.TokenUsage; usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
	}

	m.recordEnhancement(ctx, operation, result, duration)
	return result
}

func (m *Metrics) recordEnhancement(ctx context.Context, operation string, result *AIOperationResult, duration time.Duration) {
	if m == nil {
		return
	}
	success := result.FailureKind == "" && result.Error == nil
	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", success),
	}

	m.EnhanceRequests.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.EnhanceDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if !success {
		m.EnhanceFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("kind", result.FailureKind),
		))
	}

	if usage := result.TokenUsage; usage != nil {
		for _, tokens := range []struct {
			tokenType string
			value     int64
		}{
			{"input", usage.InputTokens},
			{"output", usage.OutputTokens},
			{"total", usage.TotalTokens},
		} {
			m.AITokens.Record(ctx, tokens.value, metric.WithAttributes(
				attribute.String("operation", operation),
				attribute.String("token_type", tokens.tokenType),
			))
		}
	}
}

// RecordStoreFailure counts a failed persistence operation
func (m *Metrics) RecordStoreFailure(ctx context.Context, op string) {
	if m == nil {
		return
	}
	m.StoreFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

// RecordRateLimitHit counts a rejected request
func (m *Metrics) RecordRateLimitHit(ctx context.Context, limiterType string) {
	if m == nil {
		return
	}
	m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("limiter", limiterType)))
}
