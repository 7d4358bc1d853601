package ai

import (
	"resumebuilder/internal/observability"
	"resumebuilder/internal/resume"
)

// Kind names the field an enhancement request targets
type Kind string

const (
	KindSummary    Kind = "summary"
	KindExperience Kind = "experience"
)

// Request is the wire shape of an enhancement request. Exactly one of
// PersonalInfo and Experience is set, matching Kind.
type Request struct {
	Kind         Kind                    `json:"kind"`
	PersonalInfo *resume.PersonalInfo    `json:"personalInfo,omitempty"`
	Experience   *resume.ExperienceEntry `json:"experience,omitempty"`
}

// SummaryRequest builds a summary request for info
func SummaryRequest(info resume.PersonalInfo) Request {
	return Request{Kind: KindSummary, PersonalInfo: &info}
}

// ExperienceRequest builds an experience request for exp
func ExperienceRequest(exp resume.ExperienceEntry) Request {
	return Request{Kind: KindExperience, Experience: &exp}
}

// SummaryResult is the suggested replacement for personalInfo.summary
type SummaryResult struct {
	Summary string `json:"summary"`
}

// ExperienceResult is the suggested replacement text for one experience entry
type ExperienceResult struct {
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// Response is the union of both result shapes, used on the wire
type Response struct {
	Summary      string   `json:"summary,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// TokenUsage is the token accounting reported by a provider
type TokenUsage = observability.TokenUsage

// Result carries either a value or the reason there is none. Callers
// mutate the document only when OK reports true.
type Result[T any] struct {
	Value   T
	Failure *Failure
	Usage   *TokenUsage
}

// OK reports whether the call produced a value
func (r Result[T]) OK() bool {
	return r.Failure == nil
}

func succeeded[T any](value T, usage *TokenUsage) Result[T] {
	return Result[T]{Value: value, Usage: usage}
}

func failed[T any](failure *Failure) Result[T] {
	return Result[T]{Failure: failure}
}
