package formatters

import (
	"fmt"
	"strings"

	"resumebuilder/internal/ats"
)

// ScoreTextFormatter handles text formatting for score results
type ScoreTextFormatter struct{}

func (stf *ScoreTextFormatter) Format(data any) (string, error) {
	result, ok := data.(ats.Result)
	if !ok {
		return "", fmt.Errorf("expected ScoreResult, got %T", data)
	}

	band := result.Band()
	var output strings.Builder

	output.WriteString("=== ATS COMPATIBILITY SCORE ===\n\n")
	output.WriteString(fmt.Sprintf("Score: %d/%d (%s)\n", result.Overall, ats.MaxScore, band.Label))
	output.WriteString(band.Message)
	output.WriteString("\n\n")

	output.WriteString("=== BREAKDOWN ===\n")
	for _, rule := range result.Breakdown {
		output.WriteString(fmt.Sprintf("%-18s %2d/%d\n", rule.Rule, rule.Points, rule.MaxPoints))
	}

	if len(result.Suggestions) > 0 {
		output.WriteString("\n=== SUGGESTIONS ===\n")
		for i, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, suggestion))
		}
	}

	return output.String(), nil
}

func (stf *ScoreTextFormatter) SupportedType() string {
	return TypeScore
}

// ScoreMarkdownFormatter handles markdown formatting for score results
type ScoreMarkdownFormatter struct{}

func (smf *ScoreMarkdownFormatter) Format(data any) (string, error) {
	result, ok := data.(ats.Result)
	if !ok {
		return "", fmt.Errorf("expected ScoreResult, got %T", data)
	}

	band := result.Band()
	var output strings.Builder

	output.WriteString("# ATS Compatibility Score\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %d/%d (%s)\n\n", result.Overall, ats.MaxScore, band.Label))
	output.WriteString(fmt.Sprintf("_%s_\n\n", band.Message))

	output.WriteString("## Breakdown\n\n")
	output.WriteString("| Rule | Points |\n|------|--------|\n")
	for _, rule := range result.Breakdown {
		output.WriteString(fmt.Sprintf("| %s | %d/%d |\n", rule.Rule, rule.Points, rule.MaxPoints))
	}
	output.WriteString("\n")

	if len(result.Suggestions) > 0 {
		output.WriteString("## Suggestions\n\n")
		for _, suggestion := range result.Suggestions {
			output.WriteString(fmt.Sprintf("- %s\n", suggestion))
		}
	}

	return output.String(), nil
}

func (smf *ScoreMarkdownFormatter) SupportedType() string {
	return TypeScore
}
