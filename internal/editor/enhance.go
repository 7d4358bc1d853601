package editor

import (
	"context"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/resume"
)

// Outcome reports what an enhancement did to the session
type Outcome struct {
	// Applied is false on failure, and when the target entry was removed
	// while the call was in flight
	Applied bool        `json:"applied"`
	Notice  ai.Notice   `json:"notice"`
	Failure *ai.Failure `json:"failure,omitempty"`
	State   State       `json:"state"`
}

// EnhanceSummary generates a professional summary from the personal
// information and stores it on success. The session lock is not held while
// the client is called.
func (s *Session) EnhanceSummary(ctx context.Context) Outcome {
	info := s.Document().PersonalInfo

	result := s.enhancer.EnhanceSummary(ctx, info)
	if !result.OK() {
		return s.failedOutcome(result.Failure)
	}

	summary := result.Value.Summary
	state := s.Apply(func(doc resume.Document) resume.Document {
		if summary == "" {
			return doc
		}
		updated := doc.PersonalInfo
		updated.Summary = summary
		return resume.WithPersonalInfo(doc, updated)
	})
	s.logger.Info("Summary enhancement applied", "length", len([]rune(summary)))
	return Outcome{Applied: true, Notice: ai.SuccessNotice(ai.KindSummary), State: state}
}

// EnhanceExperience rewrites the description of the entry with id and, when
// the response carries any, replaces its achievements.
func (s *Session) EnhanceExperience(ctx context.Context, id string) Outcome {
	entry, ok := s.Document().FindExperience(id)
	if !ok {
		return s.failedOutcome(&ai.Failure{
			Kind:      ai.FailureInvalidInput,
			Operation: ai.KindExperience,
			Detail:    ai.NoticeMissingPositionCompany,
		})
	}

	result := s.enhancer.EnhanceExperience(ctx, entry)
	if !result.OK() {
		return s.failedOutcome(result.Failure)
	}

	found := false
	value := result.Value
	state := s.Apply(func(doc resume.Document) resume.Document {
		_, found = doc.FindExperience(id)
		return resume.UpdateExperience(doc, id, func(exp resume.ExperienceEntry) resume.ExperienceEntry {
			if value.Description != "" {
				exp.Description = value.Description
			}
			if len(value.Achievements) > 0 {
				exp.Achievements = value.Achievements
			}
			return exp
		})
	})
	if !found {
		s.logger.Warn("Experience removed during enhancement, result discarded", "id", id)
		return Outcome{Notice: ai.SuccessNotice(ai.KindExperience), State: state}
	}

	s.logger.Info("Experience enhancement applied", "id", id, "achievements", len(value.Achievements))
	return Outcome{Applied: true, Notice: ai.SuccessNotice(ai.KindExperience), State: state}
}

func (s *Session) failedOutcome(failure *ai.Failure) Outcome {
	return Outcome{Notice: failure.Notice(), Failure: failure, State: s.State()}
}
