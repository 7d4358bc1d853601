package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumebuilder/internal/config"
	"resumebuilder/internal/resume"
)

func gatewayConfig(url string) config.AIConfig {
	return config.AIConfig{
		Provider:         config.ProviderGateway,
		Model:            "gemini-2.5-flash",
		APIKey:           "test-key",
		Timeout:          5 * time.Second,
		UseSystemPrompts: true,
		Gateway:          config.GatewayConfig{URL: url},
	}
}

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
		"usage":   map[string]int{"prompt_tokens": 12, "completion_tokens": 30, "total_tokens": 42},
	})
	return string(body)
}

func newGatewayService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewService(context.Background(), gatewayConfig(server.URL), nil)
	require.NoError(t, err)
	return svc
}

func TestGatewaySummary(t *testing.T) {
	var captured chatRequest
	svc := newGatewayService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(chatReply("  Seasoned engineer with a knack for scale.  \n")))
	})

	result := svc.EnhanceSummary(context.Background(), resume.PersonalInfo{FullName: "Ada Lovelace"})
	require.True(t, result.OK(), "failure: %v", result.Failure)
	assert.Equal(t, "Seasoned engineer with a knack for scale.", result.Value.Summary)
	require.NotNil(t, result.Usage)
	assert.Equal(t, int64(42), result.Usage.TotalTokens)

	assert.Equal(t, "google/gemini-2.5-flash", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, DefaultSystemPrompt, captured.Messages[0].Content)
	assert.Contains(t, captured.Messages[1].Content, "Write a professional resume summary for Ada Lovelace.")
}

func TestGatewayExperience(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		description  string
		achievements []string
	}{
		{
			name:         "json",
			content:      `{"description": "Built things.", "achievements": ["Shipped v1", "Cut costs 20%"]}`,
			description:  "Built things.",
			achievements: []string{"Shipped v1", "Cut costs 20%"},
		},
		{
			name:         "fenced json",
			content:      "```json\n{\"description\": \"Led team.\", \"achievements\": [\"Hired 4\"]}\n```",
			description:  "Led team.",
			achievements: []string{"Hired 4"},
		},
		{
			name:         "plain text",
			content:      "  Drove the platform roadmap.  ",
			description:  "Drove the platform roadmap.",
			achievements: []string{},
		},
		{
			name:         "json without achievements",
			content:      `{"description": "Wrote code."}`,
			description:  "Wrote code.",
			achievements: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt string
			svc := newGatewayService(t, func(w http.ResponseWriter, r *http.Request) {
				var req chatRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				prompt = req.Messages[len(req.Messages)-1].Content
				_, _ = w.Write([]byte(chatReply(tt.content)))
			})

			result := svc.EnhanceExperience(context.Background(), resume.ExperienceEntry{
				ID: "e1", Position: "Engineer", Company: "Acme",
			})
			require.True(t, result.OK(), "failure: %v", result.Failure)
			assert.Equal(t, tt.description, result.Value.Description)
			assert.Equal(t, tt.achievements, result.Value.Achievements)
			assert.Contains(t, prompt, "Position: Engineer")
			assert.Contains(t, prompt, "Company: Acme")
		})
	}
}

func TestGatewayFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   FailureKind
		notice string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"slow down"}`, FailureRateLimited, NoticeRateLimited},
		{"quota exhausted", http.StatusPaymentRequired, `{"error":"pay up"}`, FailureQuotaExhausted, NoticeQuotaExhausted},
		{"server error", http.StatusInternalServerError, `oops`, FailureGeneric, NoticeRetry},
		{"empty choices", http.StatusOK, `{"choices": []}`, FailureGeneric, NoticeRetry},
		{"malformed body", http.StatusOK, `not json`, FailureGeneric, NoticeRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newGatewayService(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			result := svc.EnhanceSummary(context.Background(), resume.PersonalInfo{FullName: "Ada"})
			require.False(t, result.OK())
			assert.Equal(t, tt.kind, result.Failure.Kind)
			assert.Equal(t, "Generation failed", result.Failure.Notice().Title)
			assert.Equal(t, tt.notice, result.Failure.Notice().Description)
		})
	}
}

func TestGatewayDoesNotRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	svc := newGatewayService(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	result := svc.EnhanceExperience(context.Background(), resume.ExperienceEntry{Position: "Dev", Company: "Co"})
	assert.False(t, result.OK())
	assert.Equal(t, int32(1), calls.Load())
}

func TestGatewayRetriesTransientErrors(t *testing.T) {
	old := retryBaseDelay
	retryBaseDelay = time.Millisecond
	t.Cleanup(func() { retryBaseDelay = old })

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(chatReply("Finally.")))
	}))
	t.Cleanup(server.Close)

	cfg := gatewayConfig(server.URL)
	cfg.MaxRetries = 3
	svc, err := NewService(context.Background(), cfg, nil)
	require.NoError(t, err)

	result := svc.EnhanceSummary(context.Background(), resume.PersonalInfo{FullName: "Ada"})
	require.True(t, result.OK())
	assert.Equal(t, "Finally.", result.Value.Summary)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGatewayCircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	cfg := gatewayConfig(server.URL)
	cfg.CircuitBreaker = config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      2,
		FailureThreshold: 0.5,
	}
	svc, err := NewService(context.Background(), cfg, nil)
	require.NoError(t, err)

	info := resume.PersonalInfo{FullName: "Ada"}
	for i := 0; i < 2; i++ {
		assert.False(t, svc.EnhanceSummary(context.Background(), info).OK())
	}

	result := svc.EnhanceSummary(context.Background(), info)
	require.False(t, result.OK())
	assert.Equal(t, "enhancement service temporarily unavailable", result.Failure.Detail)
	assert.Equal(t, int32(2), calls.Load())
	assert.False(t, svc.ModelInfo(context.Background()).Available)
}

func TestGatewayQuotaAndRateLimitKeepBreakerClosed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   FailureKind
		notice string
	}{
		{"quota exhausted", http.StatusPaymentRequired, FailureQuotaExhausted, NoticeQuotaExhausted},
		{"rate limited", http.StatusTooManyRequests, FailureRateLimited, NoticeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(server.Close)

			cfg := gatewayConfig(server.URL)
			cfg.CircuitBreaker = config.CircuitBreakerConfig{
				Enabled:          true,
				MaxRequests:      3,
				Interval:         time.Minute,
				Timeout:          time.Minute,
				MinRequests:      3,
				FailureThreshold: 0.6,
			}
			svc, err := NewService(context.Background(), cfg, nil)
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				result := svc.EnhanceSummary(context.Background(), resume.PersonalInfo{FullName: "Ada"})
				require.False(t, result.OK())
				assert.Equal(t, tt.kind, result.Failure.Kind, "attempt %d", i+1)
				assert.Equal(t, tt.notice, result.Failure.Notice().Description)
			}
			assert.Equal(t, int32(5), calls.Load())
		})
	}
}

func TestCountsAsHealthy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"success", nil, true},
		{"cancelled", context.Canceled, true},
		{"quota", &StatusError{StatusCode: http.StatusPaymentRequired}, true},
		{"rate limit", &StatusError{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &StatusError{StatusCode: http.StatusBadGateway}, false},
		{"timeout", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countsAsHealthy(tt.err))
		})
	}
}

func TestGatewayModel(t *testing.T) {
	assert.Equal(t, "google/gemini-2.5-flash", gatewayModel(""))
	assert.Equal(t, "google/gemini-2.5-pro", gatewayModel("gemini-2.5-pro"))
	assert.Equal(t, "openai/gpt-5", gatewayModel("openai/gpt-5"))
}

func TestNewGatewayProviderRequiresSettings(t *testing.T) {
	_, err := NewGatewayProvider(config.AIConfig{APIKey: "k"}, nil, nil)
	assert.Error(t, err)

	_, err = NewGatewayProvider(config.AIConfig{Gateway: config.GatewayConfig{URL: "http://x"}}, nil, nil)
	assert.Error(t, err)
}
