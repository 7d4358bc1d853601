package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/config"
	"resumebuilder/internal/resume"
)

func TestEnhanceSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeProvider{}, nil)

	rec := ts.do(t, http.MethodPost, "/enhance/summary", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var failure enhanceFailureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
	assert.Equal(t, ai.FailureInvalidInput, failure.Kind)
	assert.Equal(t, ai.Notice{Title: "Missing information", Description: ai.NoticeMissingName}, failure.Notice)

	ts.session.SetPersonalInfo(resume.PersonalInfo{FullName: "Jane"})
	rec = ts.do(t, http.MethodPost, "/enhance/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeState(t, rec)
	assert.Equal(t, "Summary for Jane", body.Document.PersonalInfo.Summary)
	assert.Contains(t, rec.Body.String(), `"applied":true`)
}

func TestEnhanceExperienceEndpoint(t *testing.T) {
	ts := newTestServer(t, &fakeProvider{}, nil)
	id, _ := ts.session.AddExperience(resume.ExperienceEntry{Company: "Acme", Position: "Engineer"})

	rec := ts.do(t, http.MethodPost, "/enhance/experiences/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeState(t, rec)
	assert.Equal(t, "Led work at Acme", body.Document.Experiences[0].Description)
	assert.Equal(t, []string{"Shipped it"}, body.Document.Experiences[0].Achievements)

	rec = ts.do(t, http.MethodPost, "/enhance/experiences/missing", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEnhanceFailureStatuses(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"rate limited", &ai.StatusError{StatusCode: 429}, http.StatusTooManyRequests, ai.NoticeRateLimited},
		{"quota", &ai.StatusError{StatusCode: 402}, http.StatusPaymentRequired, ai.NoticeQuotaExhausted},
		{"generic", &ai.StatusError{StatusCode: 500}, http.StatusBadGateway, ai.NoticeRetry},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, &fakeProvider{summaryErr: tt.err}, nil)
			before := ts.session.SetPersonalInfo(resume.PersonalInfo{FullName: "Jane", Summary: "kept"})

			rec := ts.do(t, http.MethodPost, "/enhance/summary", nil)

			assert.Equal(t, tt.status, rec.Code)
			var failure enhanceFailureResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &failure))
			assert.Equal(t, tt.message, failure.Error)
			assert.Equal(t, before.Document, ts.session.Document())
		})
	}
}

func TestStatelessEnhance(t *testing.T) {
	ts := newTestServer(t, &fakeProvider{}, nil)

	rec := ts.do(t, http.MethodPost, "/enhance", map[string]any{
		"type":         "summary",
		"personalInfo": map[string]any{"fullName": "Jane"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"summary":"Summary for Jane"}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/enhance", map[string]any{
		"kind":       "experience",
		"experience": map[string]any{"company": "Acme", "position": "Lead"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"description":"Led work at Acme","achievements":["Shipped it"]}`, rec.Body.String())

	rec = ts.do(t, http.MethodPost, "/enhance", map[string]any{"type": "cover-letter"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	assert.Equal(t, resume.NewDocument(), ts.session.Document())
}

func TestEnhanceRateLimit(t *testing.T) {
	ts := newTestServer(t, &fakeProvider{}, func(cfg *config.ServerConfig) {
		cfg.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMin: 1, BurstCapacity: 1, ByIP: true}
	})
	body := map[string]any{"type": "summary", "personalInfo": map[string]any{"fullName": "Jane"}}

	rec := ts.do(t, http.MethodPost, "/enhance", body)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/enhance", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = ts.do(t, http.MethodGet, "/document", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFailureStatus(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, failureStatus(ai.FailureDisabled))
	assert.Equal(t, http.StatusBadGateway, failureStatus(ai.FailureGeneric))
}
