package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resumebuilder/internal/config"
	"resumebuilder/internal/resume"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```  ", `{"a":1}`},
		{"  plain text ", "plain text"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanJSON(tt.in))
	}
}

func TestParseExperienceDropsBlankAchievements(t *testing.T) {
	got := parseExperience(`{"description": " Ran ops. ", "achievements": ["  ", "Cut pages by half"]}`)
	assert.Equal(t, ExperienceResult{Description: "Ran ops.", Achievements: []string{"Cut pages by half"}}, got)
}

func TestPromptsResolveOverrides(t *testing.T) {
	defaults := NewPrompts(config.PromptConfig{})
	assert.Equal(t, DefaultSystemPrompt, defaults.System())
	assert.Contains(t, defaults.Summary(resume.PersonalInfo{FullName: "Grace"}), "summary for Grace.")

	custom := NewPrompts(config.PromptConfig{
		System:     "Be brief.",
		Experience: "Describe %s at %s.",
	})
	assert.Equal(t, "Be brief.", custom.System())
	assert.Equal(t, "Describe CTO at Acme.", custom.Experience(resume.ExperienceEntry{Position: "CTO", Company: "Acme"}))
}
