package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"resumebuilder/internal/config"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
)

const maxGatewayErrorBody = 4 << 10

// GatewayProvider talks to an OpenAI-compatible chat completions endpoint
type GatewayProvider struct {
	httpClient *http.Client
	config     config.AIConfig
	model      string
	prompts    Prompts
	summaryCB  *CircuitBreaker[*chatResponse]
	expCB      *CircuitBreaker[*chatResponse]
	logger     *appErrors.Logger
}

var _ Provider = (*GatewayProvider)(nil)

// NewGatewayProvider creates a gateway provider. transport may be nil.
func NewGatewayProvider(cfg config.AIConfig, transport http.RoundTripper, logger *appErrors.Logger) (*GatewayProvider, error) {
	if cfg.Gateway.URL == "" {
		return nil, appErrors.NewConfigError(appErrors.ErrCodeInvalidConfig, "AI gateway URL is required", nil)
	}
	if cfg.APIKey == "" {
		return nil, appErrors.NewConfigError(appErrors.ErrCodeMissingAPIKey, "AI gateway API key is required", nil)
	}
	if transport == nil {
		transport = http.DefaultTransport
	}
	if logger == nil {
		logger = appErrors.Discard()
	}

	return &GatewayProvider{
		httpClient: &http.Client{Timeout: cfg.Timeout, Transport: transport},
		config:     cfg,
		model:      gatewayModel(cfg.Model),
		prompts:    NewPrompts(cfg.CustomPrompts),
		summaryCB:  NewCircuitBreaker[*chatResponse](config.ProviderGateway, KindSummary, cfg.CircuitBreaker, logger),
		expCB:      NewCircuitBreaker[*chatResponse](config.ProviderGateway, KindExperience, cfg.CircuitBreaker, logger),
		logger:     logger,
	}, nil
}

// gatewayModel qualifies a bare Gemini model name with its vendor
func gatewayModel(model string) string {
	if model == "" {
		return "google/gemini-2.5-flash"
	}
	if !strings.Contains(model, "/") && strings.HasPrefix(model, "gemini") {
		return "google/" + model
	}
	return model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
		TotalTokens      int64 `json:"total_tokens"`
	} `json:"usage,omitempty"`
}

func (r *chatResponse) content() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

func (r *chatResponse) tokenUsage() *TokenUsage {
	if r == nil || r.Usage == nil {
		return nil
	}
	return &TokenUsage{
		InputTokens:  r.Usage.PromptTokens,
		OutputTokens: r.Usage.CompletionTokens,
		TotalTokens:  r.Usage.TotalTokens,
	}
}

func (g *GatewayProvider) Name() string { return config.ProviderGateway }

// GenerateSummary implements Provider
func (g *GatewayProvider) GenerateSummary(ctx context.Context, info resume.PersonalInfo) (SummaryResult, *TokenUsage, error) {
	content, usage, err := g.complete(ctx, KindSummary, g.summaryCB, g.prompts.Summary(info))
	if err != nil {
		return SummaryResult{}, nil, err
	}
	return parseSummary(content), usage, nil
}

// GenerateExperience implements Provider
func (g *GatewayProvider) GenerateExperience(ctx context.Context, exp resume.ExperienceEntry) (ExperienceResult, *TokenUsage, error) {
	content, usage, err := g.complete(ctx, KindExperience, g.expCB, g.prompts.Experience(exp))
	if err != nil {
		return ExperienceResult{}, nil, err
	}
	return parseExperience(content), usage, nil
}

func (g *GatewayProvider) complete(ctx context.Context, op Kind, cb *CircuitBreaker[*chatResponse], userPrompt string) (string, *TokenUsage, error) {
	ctx, span := otel.Tracer("resumebuilder.ai.gateway").Start(ctx, "gateway."+string(op))
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.provider", config.ProviderGateway),
		attribute.String("ai.model", g.model),
	)

	messages := make([]chatMessage, 0, 2)
	if g.config.UseSystemPrompts {
		messages = append(messages, chatMessage{Role: "system", Content: g.prompts.System()})
	}
	messages = append(messages, chatMessage{Role: "user", Content: userPrompt})
	body := chatRequest{Model: g.model, Messages: messages}
	if g.config.Temperature > 0 {
		temperature := g.config.Temperature
		body.Temperature = &temperature
	}

	g.logger.Debug("Generating content", "provider", config.ProviderGateway, "operation", op, "model", g.model)

	resp, err := cb.Execute(func() (*chatResponse, error) {
		return withRetry(ctx, g.logger, string(op), g.config.MaxRetries, func() (*chatResponse, error) {
			return g.post(ctx, body)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "gateway request failed")
		return "", nil, err
	}

	content := resp.content()
	if strings.TrimSpace(content) == "" {
		err := appErrors.NewAIError(appErrors.ErrCodeAIServiceFailed, NoticeNoContent, nil)
		span.RecordError(err)
		return "", nil, err
	}

	usage := resp.tokenUsage()
	if usage != nil {
		span.SetAttributes(attribute.Int64("ai.tokens.total", usage.TotalTokens))
	}
	return content, usage, nil
}

func (g *GatewayProvider) post(ctx context.Context, body chatRequest) (*chatResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.Gateway.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxGatewayErrorBody))
		g.logger.Warn("AI gateway error", "status", resp.StatusCode, "body", string(errBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, appErrors.NewAIError(appErrors.ErrCodeAIParseFailed, "Failed to parse gateway response", err)
	}
	return &out, nil
}

// GetModelInfo reports the configured model. The gateway has no cheap
// availability probe, so only the breaker state is consulted.
func (g *GatewayProvider) GetModelInfo(context.Context) *ModelInfo {
	info := &ModelInfo{
		Provider:  config.ProviderGateway,
		Name:      g.model,
		Available: g.summaryCB.IsHealthy() && g.expCB.IsHealthy(),
	}
	if !info.Available {
		info.Error = "circuit breaker open"
	}
	return info
}

// Stats returns circuit breaker statistics
func (g *GatewayProvider) Stats() map[string]any {
	return map[string]any{
		"summary":    g.summaryCB.Stats(),
		"experience": g.expCB.Stats(),
	}
}

// Close releases idle connections
func (g *GatewayProvider) Close() error {
	g.httpClient.CloseIdleConnections()
	return nil
}
