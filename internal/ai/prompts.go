package ai

import (
	"fmt"

	"resumebuilder/internal/config"
	"resumebuilder/internal/resume"
)

// DefaultSystemPrompt frames every enhancement request
const DefaultSystemPrompt = "You are a professional resume writer and career consultant with expertise in creating ATS-optimized content."

// DefaultSummaryPrompt takes the candidate's full name
const DefaultSummaryPrompt = `Write a professional resume summary for %s.
Keep it concise (3-4 sentences), highlight key strengths and career goals.
Make it ATS-friendly with relevant keywords.
Output only the summary text, no additional formatting or explanations.`

// DefaultExperiencePrompt takes the position and the company
const DefaultExperiencePrompt = `Enhance this work experience entry:
Position: %s
Company: %s

Create:
1. A compelling job description (2-3 sentences) that highlights responsibilities and impact
2. 3-5 bullet points of specific achievements with quantifiable results where possible

Use action verbs and industry-specific keywords for ATS optimization.

Respond in JSON format:
{
  "description": "your description here",
  "achievements": ["achievement 1", "achievement 2", "achievement 3"]
}`

// Prompts resolves configured overrides against the defaults
type Prompts struct {
	custom config.PromptConfig
}

// NewPrompts returns prompts honoring the configured overrides
func NewPrompts(custom config.PromptConfig) Prompts {
	return Prompts{custom: custom}
}

// System returns the system instruction
func (p Prompts) System() string {
	return resolvePrompt(p.custom.System, DefaultSystemPrompt)
}

// Summary returns the user prompt for a summary request
func (p Prompts) Summary(info resume.PersonalInfo) string {
	return fmt.Sprintf(resolvePrompt(p.custom.Summary, DefaultSummaryPrompt), info.FullName)
}

// Experience returns the user prompt for an experience request
func (p Prompts) Experience(exp resume.ExperienceEntry) string {
	return fmt.Sprintf(resolvePrompt(p.custom.Experience, DefaultExperiencePrompt), exp.Position, exp.Company)
}

// resolvePrompt prefers the configured prompt. File-based overrides have
// already been folded into the configured text by the config loader.
func resolvePrompt(fromConfig, fromDefault string) string {
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
