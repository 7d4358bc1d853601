package ai

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"resumebuilder/internal/config"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
)

const modelCheckTimeout = 10 * time.Second

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client    *genai.Client
	config    config.AIConfig
	prompts   Prompts
	summaryCB *CircuitBreaker[*genai.GenerateContentResponse]
	expCB     *CircuitBreaker[*genai.GenerateContentResponse]
	modelCB   *CircuitBreaker[*genai.Model]
	logger    *appErrors.Logger
}

var _ Provider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a Gemini provider. transport may be nil.
func NewGeminiProvider(ctx context.Context, cfg config.AIConfig, transport http.RoundTripper, logger *appErrors.Logger) (*GeminiProvider, error) {
	if logger == nil {
		logger = appErrors.Discard()
	}
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if transport != nil {
		clientConfig.HTTPClient = &http.Client{Transport: transport}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	modelBreaker := cfg.CircuitBreaker
	// Model lookups only feed health checks; trip later than generation.
	modelBreaker.MinRequests = max(modelBreaker.MinRequests, 5)
	modelBreaker.FailureThreshold = max(modelBreaker.FailureThreshold, 0.8)

	return &GeminiProvider{
		client:    client,
		config:    cfg,
		prompts:   NewPrompts(cfg.CustomPrompts),
		summaryCB: NewCircuitBreaker[*genai.GenerateContentResponse](config.ProviderGemini, KindSummary, cfg.CircuitBreaker, logger),
		expCB:     NewCircuitBreaker[*genai.GenerateContentResponse](config.ProviderGemini, KindExperience, cfg.CircuitBreaker, logger),
		modelCB:   NewCircuitBreaker[*genai.Model](config.ProviderGemini, "model", modelBreaker, logger),
		logger:    logger,
	}, nil
}

func (g *GeminiProvider) Name() string { return config.ProviderGemini }

// GenerateSummary implements Provider
func (g *GeminiProvider) GenerateSummary(ctx context.Context, info resume.PersonalInfo) (SummaryResult, *TokenUsage, error) {
	text, usage, err := g.generate(ctx, KindSummary, g.summaryCB, g.prompts.Summary(info), g.baseConfig(),
		attribute.Int("input.name_length", len(info.FullName)))
	if err != nil {
		return SummaryResult{}, nil, err
	}
	return parseSummary(text), usage, nil
}

// GenerateExperience implements Provider
func (g *GeminiProvider) GenerateExperience(ctx context.Context, exp resume.ExperienceEntry) (ExperienceResult, *TokenUsage, error) {
	text, usage, err := g.generate(ctx, KindExperience, g.expCB, g.prompts.Experience(exp), g.buildExperienceSchema(),
		attribute.String("input.position", exp.Position))
	if err != nil {
		return ExperienceResult{}, nil, err
	}
	return parseExperience(text), usage, nil
}

// generate runs one request with tracing, breaker and retry
func (g *GeminiProvider) generate(
	ctx context.Context,
	op Kind,
	cb *CircuitBreaker[*genai.GenerateContentResponse],
	userPrompt string,
	genaiConfig *genai.GenerateContentConfig,
	spanAttributes ...attribute.KeyValue,
) (string, *TokenUsage, error) {
	ctx, span := otel.Tracer("resumebuilder.ai.gemini").Start(ctx, "gemini."+string(op))
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", config.ProviderGemini),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if g.config.UseSystemPrompts {
		genaiConfig.SystemInstruction = genai.NewContentFromText(g.prompts.System(), genai.RoleUser)
	}

	callCtx := ctx
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	result, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return withRetry(callCtx, g.logger, string(op), g.config.MaxRetries, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(callCtx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		g.logger.LogError(err, "Gemini generation failed", "operation", op)
		return "", nil, err
	}

	text := result.Text()
	if text == "" {
		err := appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed, NoticeNoContent, nil)
		span.RecordError(err)
		return "", nil, err
	}

	usage := extractTokenUsage(result)
	if usage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", usage.InputTokens),
			attribute.Int64("ai.tokens.output", usage.OutputTokens),
			attribute.Int64("ai.tokens.total", usage.TotalTokens),
		)
	}
	span.SetAttributes(attribute.Bool("success", true))
	return text, usage, nil
}

func (g *GeminiProvider) baseConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if g.config.Temperature > 0 {
		temperature := g.config.Temperature
		cfg.Temperature = &temperature
	}
	return cfg
}

// buildExperienceSchema constrains the experience answer to JSON
func (g *GeminiProvider) buildExperienceSchema() *genai.GenerateContentConfig {
	cfg := g.baseConfig()
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {Type: genai.TypeString},
			"achievements": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"description", "achievements"},
	}
	return cfg
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	info := &ModelInfo{Provider: config.ProviderGemini, Name: g.config.Model}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelCB.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		info.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"error", err.Error())
		return info
	}

	info.Available = true
	info.DisplayName = model.DisplayName
	info.Version = model.Version
	return info
}

// Stats returns circuit breaker statistics
func (g *GeminiProvider) Stats() map[string]any {
	return map[string]any{
		"summary":    g.summaryCB.Stats(),
		"experience": g.expCB.Stats(),
		"model":      g.modelCB.Stats(),
		"healthy":    g.summaryCB.IsHealthy() && g.expCB.IsHealthy(),
	}
}

// Close implements Provider
func (g *GeminiProvider) Close() error {
	return nil
}

// extractTokenUsage extracts token usage information from Gemini API response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
