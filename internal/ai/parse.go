package ai

import (
	"encoding/json"
	"strings"
)

// cleanJSON strips a surrounding markdown code fence, which models add
// even when told not to
func cleanJSON(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag line
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseSummary turns generated text into a summary result
func parseSummary(content string) SummaryResult {
	return SummaryResult{Summary: strings.TrimSpace(content)}
}

// parseExperience reads the JSON answer to an experience prompt. Text that
// is not JSON becomes the description with no achievements.
func parseExperience(content string) ExperienceResult {
	var result ExperienceResult
	if err := json.Unmarshal([]byte(cleanJSON(content)), &result); err != nil {
		return ExperienceResult{Description: strings.TrimSpace(content), Achievements: []string{}}
	}

	result.Description = strings.TrimSpace(result.Description)
	achievements := make([]string, 0, len(result.Achievements))
	for _, a := range result.Achievements {
		if a = strings.TrimSpace(a); a != "" {
			achievements = append(achievements, a)
		}
	}
	result.Achievements = achievements
	return result
}
