package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"resumebuilder/internal/config"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/observability"
	"resumebuilder/internal/resume"
)

// Enhancer is what the editing session needs from the enhancement client
type Enhancer interface {
	EnhanceSummary(ctx context.Context, info resume.PersonalInfo) Result[SummaryResult]
	EnhanceExperience(ctx context.Context, exp resume.ExperienceEntry) Result[ExperienceResult]
}

// Service validates enhancement requests, calls the provider and turns
// errors into explicit failures
type Service struct {
	provider Provider
	logger   *appErrors.Logger
	metrics  *observability.Metrics
}

var _ Enhancer = (*Service)(nil)

// ServiceOption configures NewService
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	metrics   *observability.Metrics
	transport http.RoundTripper
}

// WithMetrics records enhancement metrics
func WithMetrics(metrics *observability.Metrics) ServiceOption {
	return func(o *serviceOptions) { o.metrics = metrics }
}

// WithTransport sets the HTTP transport used for provider calls
func WithTransport(transport http.RoundTripper) ServiceOption {
	return func(o *serviceOptions) { o.transport = transport }
}

// NewService creates the enhancement client for the configured provider
func NewService(ctx context.Context, cfg config.AIConfig, logger *appErrors.Logger, opts ...ServiceOption) (*Service, error) {
	if logger == nil {
		logger = appErrors.Discard()
	}
	var o serviceOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", cfg.Temperature,
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries,
		"use_system_prompts", cfg.UseSystemPrompts)

	var provider Provider
	var err error
	switch cfg.Provider {
	case config.ProviderGemini:
		provider, err = NewGeminiProvider(ctx, cfg, o.transport, logger)
	case config.ProviderGateway:
		provider, err = NewGatewayProvider(cfg, o.transport, logger)
	case config.ProviderDisabled, "":
		provider = DisabledProvider{}
	default:
		return nil, appErrors.NewConfigError(appErrors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}
	if err != nil {
		return nil, appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return NewServiceWithProvider(provider, logger, o.metrics), nil
}

// NewServiceWithProvider wraps an existing provider
func NewServiceWithProvider(provider Provider, logger *appErrors.Logger, metrics *observability.Metrics) *Service {
	if logger == nil {
		logger = appErrors.Discard()
	}
	return &Service{provider: provider, logger: logger, metrics: metrics}
}

// ProviderName returns the active provider's name
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// Enabled reports whether calls can reach a backend
func (s *Service) Enabled() bool {
	return s.provider.Name() != config.ProviderDisabled
}

// ModelInfo returns information about the AI model for health checks
func (s *Service) ModelInfo(ctx context.Context) *ModelInfo {
	return s.provider.GetModelInfo(ctx)
}

// Stats returns the provider's breaker statistics
func (s *Service) Stats() map[string]any {
	return s.provider.Stats()
}

// Close releases provider resources
func (s *Service) Close() error {
	return s.provider.Close()
}

// EnhanceSummary asks for a professional summary. A missing full name fails
// without calling the provider.
func (s *Service) EnhanceSummary(ctx context.Context, info resume.PersonalInfo) Result[SummaryResult] {
	if strings.TrimSpace(info.FullName) == "" {
		return failed[SummaryResult](&Failure{Kind: FailureInvalidInput, Operation: KindSummary, Detail: NoticeMissingName})
	}

	var value SummaryResult
	failure, usage := s.track(ctx, KindSummary, func(ctx context.Context) (*TokenUsage, error) {
		out, usage, err := s.provider.GenerateSummary(ctx, info)
		if err == nil && out.Summary == "" {
			err = appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed, NoticeNoContent, nil)
		}
		value = out
		return usage, err
	})
	if failure != nil {
		return failed[SummaryResult](failure)
	}
	return succeeded(value, usage)
}

// EnhanceExperience asks for a description and achievements. Position and
// company are required.
func (s *Service) EnhanceExperience(ctx context.Context, exp resume.ExperienceEntry) Result[ExperienceResult] {
	if strings.TrimSpace(exp.Position) == "" || strings.TrimSpace(exp.Company) == "" {
		return failed[ExperienceResult](&Failure{Kind: FailureInvalidInput, Operation: KindExperience, Detail: NoticeMissingPositionCompany})
	}

	var value ExperienceResult
	failure, usage := s.track(ctx, KindExperience, func(ctx context.Context) (*TokenUsage, error) {
		out, usage, err := s.provider.GenerateExperience(ctx, exp)
		if err == nil && out.Description == "" {
			err = appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed, NoticeNoContent, nil)
		}
		if out.Achievements == nil {
			out.Achievements = []string{}
		}
		value = out
		return usage, err
	})
	if failure != nil {
		return failed[ExperienceResult](failure)
	}
	return succeeded(value, usage)
}

// Enhance dispatches a wire request on its kind
func (s *Service) Enhance(ctx context.Context, req Request) Result[Response] {
	switch req.Kind {
	case KindSummary:
		if req.PersonalInfo == nil {
			return failed[Response](&Failure{Kind: FailureInvalidInput, Operation: KindSummary, Detail: "personalInfo is required"})
		}
		r := s.EnhanceSummary(ctx, *req.PersonalInfo)
		if !r.OK() {
			return failed[Response](r.Failure)
		}
		return succeeded(Response{Summary: r.Value.Summary}, r.Usage)
	case KindExperience:
		if req.Experience == nil {
			return failed[Response](&Failure{Kind: FailureInvalidInput, Operation: KindExperience, Detail: "experience is required"})
		}
		r := s.EnhanceExperience(ctx, *req.Experience)
		if !r.OK() {
			return failed[Response](r.Failure)
		}
		return succeeded(Response{Description: r.Value.Description, Achievements: r.Value.Achievements}, r.Usage)
	default:
		return failed[Response](&Failure{Kind: FailureInvalidInput, Operation: req.Kind, Detail: fmt.Sprintf("unknown enhancement kind %q", req.Kind)})
	}
}

// track instruments one provider call and classifies its error
func (s *Service) track(ctx context.Context, op Kind, call func(context.Context) (*TokenUsage, error)) (*Failure, *TokenUsage) {
	var failure *Failure
	var usage *TokenUsage

	s.metrics.TrackAIOperation(ctx, string(op), func(ctx context.Context) *observability.AIOperationResult {
		u, err := call(ctx)
		usage = u
		if err != nil {
			failure = classify(op, err)
			s.logger.LogError(err, "Enhancement failed",
				"operation", op,
				"provider", s.provider.Name(),
				"failure_kind", failure.Kind)
			return &observability.AIOperationResult{FailureKind: string(failure.Kind), Error: err, TokenUsage: u}
		}
		return &observability.AIOperationResult{TokenUsage: u}
	})
	return failure, usage
}
