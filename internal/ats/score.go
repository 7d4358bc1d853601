// Package ats computes the heuristic applicant-tracking-system compatibility
// score of a résumé document.
package ats

import "resumebuilder/internal/resume"

// Band thresholds on the overall score.
const (
	ExcellentThreshold = 80
	GoodThreshold      = 60
)

// MaxScore is the sum of every rule's points.
const MaxScore = 100

// RuleResult is the outcome of a single rule.
type RuleResult struct {
	Rule       string `json:"rule" yaml:"rule"`
	Points     int    `json:"points" yaml:"points"`
	MaxPoints  int    `json:"maxPoints" yaml:"maxPoints"`
	Suggestion string `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// Result is the score of a document. It is derived and never persisted.
type Result struct {
	Overall     int          `json:"overall" yaml:"overall"`
	Suggestions []string     `json:"suggestions" yaml:"suggestions"`
	Breakdown   []RuleResult `json:"breakdown" yaml:"breakdown"`
}

// Score evaluates every rule against doc and sums the points. It has no
// side effects and never fails.
func Score(doc resume.Document) Result {
	result := Result{
		Suggestions: []string{},
		Breakdown:   make([]RuleResult, 0, len(Rules)),
	}
	for _, rule := range Rules {
		points, suggestion := rule.Evaluate(doc)
		result.Overall += points
		if suggestion != "" {
			result.Suggestions = append(result.Suggestions, suggestion)
		}
		result.Breakdown = append(result.Breakdown, RuleResult{
			Rule:       rule.Name,
			Points:     points,
			MaxPoints:  rule.MaxPoints,
			Suggestion: suggestion,
		})
	}
	return result
}

// Tone is the sentiment a consumer should attach to a band.
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
	ToneNegative Tone = "negative"
)

// Band is the presentation grade of an overall score.
type Band struct {
	Label   string `json:"label" yaml:"label"`
	Tone    Tone   `json:"tone" yaml:"tone"`
	Message string `json:"message" yaml:"message"`
}

var (
	BandExcellent = Band{Label: "Excellent", Tone: TonePositive, Message: "Great job!"}
	BandGood      = Band{Label: "Good", Tone: ToneNeutral, Message: "Almost there!"}
	BandNeedsWork = Band{Label: "Needs Work", Tone: ToneNegative, Message: "Keep improving"}
)

// BandFor grades an overall score.
func BandFor(overall int) Band {
	switch {
	case overall >= ExcellentThreshold:
		return BandExcellent
	case overall >= GoodThreshold:
		return BandGood
	default:
		return BandNeedsWork
	}
}

// Band grades the result.
func (r Result) Band() Band {
	return BandFor(r.Overall)
}
