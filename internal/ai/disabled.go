package ai

import (
	"context"

	"resumebuilder/internal/config"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
)

// DisabledProvider answers every request with a disabled failure
type DisabledProvider struct{}

var _ Provider = DisabledProvider{}

func errDisabled() error {
	return appErrors.NewAIError(appErrors.ErrCodeAIDisabled, NoticeDisabled, nil)
}

func (DisabledProvider) Name() string { return config.ProviderDisabled }

func (DisabledProvider) GenerateSummary(context.Context, resume.PersonalInfo) (SummaryResult, *TokenUsage, error) {
	return SummaryResult{}, nil, errDisabled()
}

func (DisabledProvider) GenerateExperience(context.Context, resume.ExperienceEntry) (ExperienceResult, *TokenUsage, error) {
	return ExperienceResult{}, nil, errDisabled()
}

func (DisabledProvider) GetModelInfo(context.Context) *ModelInfo {
	return &ModelInfo{Provider: config.ProviderDisabled, Error: NoticeDisabled}
}

func (DisabledProvider) Stats() map[string]any { return map[string]any{"enabled": false} }

func (DisabledProvider) Close() error { return nil }
