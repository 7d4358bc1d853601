package ats

import (
	"fmt"
	"unicode/utf8"

	"resumebuilder/internal/resume"
)

// Suggestion texts, in rule order.
const (
	SuggestPersonalInfo     = "Complete all required personal information"
	SuggestSummary          = "Add a professional summary (at least 50 characters)"
	SuggestMoreExperience   = "Add more work experience entries for better ATS score"
	SuggestFirstExperience  = "Add at least one work experience entry"
	SuggestDetailedExp      = "Add detailed descriptions to your work experience"
	SuggestEducation        = "Add your education history"
	SuggestSkills           = "Add relevant skills to improve your ATS score"
	suggestMoreSkillsFormat = "Add more skills (currently %d/5)"
)

const (
	minSummaryLength     = 50
	minDescriptionLength = 100
	fullExperienceCount  = 2
	fullSkillCount       = 5
)

// Rule is one independent scoring evaluator. Evaluate returns the points
// earned and, when the rule is not fully satisfied, a suggestion.
type Rule struct {
	Name      string
	MaxPoints int
	Evaluate  func(doc resume.Document) (points int, suggestion string)
}

// Rules is the ordered rule set. Suggestion order in a Result follows this
// order.
var Rules = []Rule{
	{Name: "personal_info", MaxPoints: 20, Evaluate: scorePersonalInfo},
	{Name: "summary", MaxPoints: 15, Evaluate: scoreSummary},
	{Name: "experience_count", MaxPoints: 30, Evaluate: scoreExperienceCount},
	{Name: "experience_detail", MaxPoints: 10, Evaluate: scoreExperienceDetail},
	{Name: "education", MaxPoints: 15, Evaluate: scoreEducation},
	{Name: "skills", MaxPoints: 10, Evaluate: scoreSkills},
}

func scorePersonalInfo(doc resume.Document) (int, string) {
	info := doc.PersonalInfo
	if info.FullName != "" && info.Email != "" && info.Phone != "" {
		return 20, ""
	}
	return 0, SuggestPersonalInfo
}

func scoreSummary(doc resume.Document) (int, string) {
	if utf8.RuneCountInString(doc.PersonalInfo.Summary) > minSummaryLength {
		return 15, ""
	}
	return 0, SuggestSummary
}

func scoreExperienceCount(doc resume.Document) (int, string) {
	switch n := len(doc.Experiences); {
	case n >= fullExperienceCount:
		return 30, ""
	case n == 1:
		return 20, SuggestMoreExperience
	default:
		return 0, SuggestFirstExperience
	}
}

func scoreExperienceDetail(doc resume.Document) (int, string) {
	for _, exp := range doc.Experiences {
		if utf8.RuneCountInString(exp.Description) > minDescriptionLength {
			return 10, ""
		}
	}
	return 0, SuggestDetailedExp
}

func scoreEducation(doc resume.Document) (int, string) {
	if len(doc.Education) > 0 {
		return 15, ""
	}
	return 0, SuggestEducation
}

func scoreSkills(doc resume.Document) (int, string) {
	switch n := len(doc.Skills); {
	case n >= fullSkillCount:
		return 10, ""
	case n > 0:
		return 5, fmt.Sprintf(suggestMoreSkillsFormat, n)
	default:
		return 0, SuggestSkills
	}
}
