package ai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"resumebuilder/internal/config"
	"resumebuilder/internal/resume"
)

func TestExtractTokenUsage(t *testing.T) {
	assert.Nil(t, extractTokenUsage(nil))
	assert.Nil(t, extractTokenUsage(&genai.GenerateContentResponse{}))

	usage := extractTokenUsage(&genai.GenerateContentResponse{
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 5,
			TotalTokenCount:      15,
		},
	})
	require.NotNil(t, usage)
	assert.Equal(t, TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}, *usage)
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"network", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"503", &StatusError{StatusCode: http.StatusServiceUnavailable}, true},
		{"429", &StatusError{StatusCode: http.StatusTooManyRequests}, false},
		{"400", &StatusError{StatusCode: http.StatusBadRequest}, false},
		{"plain", errors.New("bad"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}

func TestBackoffIsCapped(t *testing.T) {
	assert.GreaterOrEqual(t, backoff(1), retryBaseDelay)
	assert.LessOrEqual(t, backoff(20), 30*time.Second)
}

func TestGeminiProviderGeneratesExperience(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "{\"description\": \"Scaled APIs.\", \"achievements\": [\"99.99% uptime\"]}"}]}}],
			"usageMetadata": {"promptTokenCount": 3, "candidatesTokenCount": 4, "totalTokenCount": 7}
		}`))
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()
	cfg := config.AIConfig{Provider: config.ProviderGemini, Model: "gemini-2.5-flash", APIKey: "k", Timeout: 5 * time.Second}
	provider, err := NewGeminiProvider(ctx, cfg, nil, nil)
	require.NoError(t, err)

	// Point the client at the test server.
	provider.client, err = genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      "k",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL + "/"},
	})
	require.NoError(t, err)

	svc := NewServiceWithProvider(provider, nil, nil)
	result := svc.EnhanceExperience(ctx, resume.ExperienceEntry{Position: "SRE", Company: "Acme"})
	require.True(t, result.OK(), "failure: %v", result.Failure)
	assert.Equal(t, "Scaled APIs.", result.Value.Description)
	assert.Equal(t, []string{"99.99% uptime"}, result.Value.Achievements)
	assert.Equal(t, int64(7), result.Usage.TotalTokens)
	assert.True(t, strings.HasSuffix(path, "gemini-2.5-flash:generateContent"), path)
}
