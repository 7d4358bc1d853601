package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"resumebuilder/internal/config"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
)

// fakeProvider records calls and returns canned answers
type fakeProvider struct {
	summary    SummaryResult
	experience ExperienceResult
	err        error
	calls      int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) GenerateSummary(context.Context, resume.PersonalInfo) (SummaryResult, *TokenUsage, error) {
	f.calls++
	return f.summary, &TokenUsage{TotalTokens: 7}, f.err
}

func (f *fakeProvider) GenerateExperience(context.Context, resume.ExperienceEntry) (ExperienceResult, *TokenUsage, error) {
	f.calls++
	return f.experience, nil, f.err
}

func (f *fakeProvider) GetModelInfo(context.Context) *ModelInfo { return &ModelInfo{Name: "fake", Available: true} }
func (f *fakeProvider) Stats() map[string]any                  { return map[string]any{} }
func (f *fakeProvider) Close() error                           { return nil }

func TestEnhancePreconditions(t *testing.T) {
	provider := &fakeProvider{summary: SummaryResult{Summary: "x"}}
	svc := NewServiceWithProvider(provider, nil, nil)
	ctx := context.Background()

	summary := svc.EnhanceSummary(ctx, resume.PersonalInfo{FullName: "   "})
	require.False(t, summary.OK())
	assert.Equal(t, FailureInvalidInput, summary.Failure.Kind)
	assert.Equal(t, Notice{Title: "Missing information", Description: NoticeMissingName}, summary.Failure.Notice())

	exp := svc.EnhanceExperience(ctx, resume.ExperienceEntry{Position: "Engineer"})
	require.False(t, exp.OK())
	assert.Equal(t, NoticeMissingPositionCompany, exp.Failure.Notice().Description)

	assert.Zero(t, provider.calls, "no call is made without the required fields")
}

func TestEnhanceEmptyContentIsFailure(t *testing.T) {
	svc := NewServiceWithProvider(&fakeProvider{}, nil, nil)
	ctx := context.Background()

	summary := svc.EnhanceSummary(ctx, resume.PersonalInfo{FullName: "Ada"})
	require.False(t, summary.OK())
	assert.Equal(t, FailureGeneric, summary.Failure.Kind)

	exp := svc.EnhanceExperience(ctx, resume.ExperienceEntry{Position: "P", Company: "C"})
	require.False(t, exp.OK())
	assert.Equal(t, "Enhancement failed", exp.Failure.Notice().Title)
}

func TestEnhanceDispatch(t *testing.T) {
	provider := &fakeProvider{
		summary:    SummaryResult{Summary: "A summary."},
		experience: ExperienceResult{Description: "Did things."},
	}
	svc := NewServiceWithProvider(provider, nil, nil)
	ctx := context.Background()

	r := svc.Enhance(ctx, SummaryRequest(resume.PersonalInfo{FullName: "Ada"}))
	require.True(t, r.OK())
	assert.Equal(t, Response{Summary: "A summary."}, r.Value)
	assert.Equal(t, int64(7), r.Usage.TotalTokens)

	r = svc.Enhance(ctx, ExperienceRequest(resume.ExperienceEntry{Position: "P", Company: "C"}))
	require.True(t, r.OK())
	assert.Equal(t, "Did things.", r.Value.Description)
	assert.Equal(t, []string{}, r.Value.Achievements)

	r = svc.Enhance(ctx, Request{Kind: KindSummary})
	require.False(t, r.OK())
	assert.Equal(t, FailureInvalidInput, r.Failure.Kind)

	r = svc.Enhance(ctx, Request{Kind: "cover_letter"})
	require.False(t, r.OK())
	assert.Contains(t, r.Failure.Detail, "unknown enhancement kind")
}

func TestDisabledService(t *testing.T) {
	svc, err := NewService(context.Background(), config.AIConfig{Provider: config.ProviderDisabled}, nil)
	require.NoError(t, err)
	assert.False(t, svc.Enabled())

	r := svc.EnhanceSummary(context.Background(), resume.PersonalInfo{FullName: "Ada"})
	require.False(t, r.OK())
	assert.Equal(t, FailureDisabled, r.Failure.Kind)
	assert.Equal(t, NoticeDisabled, r.Failure.Notice().Description)
}

func TestNewServiceRejectsUnknownProvider(t *testing.T) {
	_, err := NewService(context.Background(), config.AIConfig{Provider: "openai"}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrCodeInvalidConfig, appErrors.CodeOf(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"gateway 429", &StatusError{StatusCode: http.StatusTooManyRequests}, FailureRateLimited},
		{"gateway 402", &StatusError{StatusCode: http.StatusPaymentRequired}, FailureQuotaExhausted},
		{"gateway 500", &StatusError{StatusCode: http.StatusInternalServerError}, FailureGeneric},
		{"googleapi 429", &googleapi.Error{Code: http.StatusTooManyRequests}, FailureRateLimited},
		{"wrapped 429", errors.Join(errors.New("ctx"), &StatusError{StatusCode: 429}), FailureRateLimited},
		{"disabled", errDisabled(), FailureDisabled},
		{"breaker open", gobreaker.ErrOpenState, FailureGeneric},
		{"plain", errors.New("boom"), FailureGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := classify(KindExperience, tt.err)
			assert.Equal(t, tt.want, f.Kind)
			assert.ErrorIs(t, f, tt.err)
		})
	}
}

func TestFailureNotices(t *testing.T) {
	assert.Equal(t, "Generation failed", (&Failure{Kind: FailureGeneric, Operation: KindSummary}).Notice().Title)
	assert.Equal(t, "Enhancement failed", (&Failure{Kind: FailureRateLimited, Operation: KindExperience}).Notice().Title)
	assert.Equal(t, NoticeQuotaExhausted, (&Failure{Kind: FailureQuotaExhausted}).Notice().Description)
	assert.Equal(t, "Summary generated!", SuccessNotice(KindSummary).Title)
	assert.Equal(t, "Content enhanced!", SuccessNotice(KindExperience).Title)
}
