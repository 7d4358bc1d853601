package ai

import (
	"context"

	"resumebuilder/internal/resume"
)

// Provider generates replacement text from a backend model
type Provider interface {
	Name() string
	GenerateSummary(ctx context.Context, info resume.PersonalInfo) (SummaryResult, *TokenUsage, error)
	GenerateExperience(ctx context.Context, exp resume.ExperienceEntry) (ExperienceResult, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Stats() map[string]any
	Close() error
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Provider    string `json:"provider"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}
