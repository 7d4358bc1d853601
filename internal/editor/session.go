// Package editor holds the single editing session: the current document,
// its score, write-through persistence and the enhancement protocol.
package editor

import (
	"context"
	"strings"
	"sync"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/ats"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/observability"
	"resumebuilder/internal/resume"
	"resumebuilder/internal/store"
)

// State is the document together with its score
type State struct {
	Document resume.Document `json:"document" yaml:"document"`
	Score    ats.Result      `json:"score" yaml:"score"`
}

// Session owns the document for one user. Every mutation replaces the
// document wholesale, recomputes the score and queues a write-through.
type Session struct {
	mu    sync.RWMutex
	doc   resume.Document
	score ats.Result

	mirror   *store.Mirror
	enhancer ai.Enhancer
	logger   *appErrors.Logger
	metrics  *observability.Metrics
	newID    resume.IDGenerator
}

// Option configures a Session
type Option func(*Session)

// WithMetrics records score metrics on every mutation
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Session) { s.metrics = metrics }
}

// WithIDGenerator overrides how entry ids are assigned
func WithIDGenerator(gen resume.IDGenerator) Option {
	return func(s *Session) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// NewSession restores the document from st once and starts mirroring
// mutations back to it. A nil enhancer behaves like a disabled provider.
func NewSession(ctx context.Context, st *store.DocumentStore, enhancer ai.Enhancer, logger *appErrors.Logger, opts ...Option) *Session {
	if logger == nil {
		logger = appErrors.Discard()
	}
	s := &Session{
		enhancer: enhancer,
		logger:   logger,
		newID:    resume.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.enhancer == nil {
		s.enhancer = ai.NewServiceWithProvider(ai.DisabledProvider{}, logger, s.metrics)
	}

	s.doc = st.Load(ctx)
	s.score = ats.Score(s.doc)
	s.mirror = store.NewMirror(st, logger)

	logger.Debug("Editing session restored",
		"key", st.Key(),
		"experiences", len(s.doc.Experiences),
		"education", len(s.doc.Education),
		"skills", len(s.doc.Skills),
		"score", s.score.Overall)
	return s
}

// Document returns a copy of the current document
func (s *Session) Document() resume.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Score returns the score of the current document
func (s *Session) Score() ats.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

// State returns the document and its score as one consistent snapshot
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Document: s.doc.Clone(), Score: s.score}
}

// Apply replaces the document with change(current). The write is queued
// before the lock is released so the store sees commits in order.
func (s *Session) Apply(change func(resume.Document) resume.Document) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := change(s.doc.Clone()).Normalize()
	state := s.commit(next)
	s.mirror.Submit(state.Document)
	return state
}

// commit must be called with mu held
func (s *Session) commit(next resume.Document) State {
	s.doc = next
	s.score = ats.Score(next)
	s.metrics.RecordScore(context.Background(), s.score.Overall, s.score.Band().Label)
	return State{Document: next.Clone(), Score: s.score}
}

// Replace installs doc as the whole document, as when importing a file
func (s *Session) Replace(doc resume.Document) State {
	return s.Apply(func(resume.Document) resume.Document { return doc.Clone() })
}

// Reset clears the stored document and returns to the empty default
func (s *Session) Reset() State {
	s.mu.Lock()
	state := s.commit(resume.NewDocument())
	s.mirror.Clear()
	s.mu.Unlock()

	s.logger.Info("Document reset")
	return state
}

// SetPersonalInfo replaces the personal information section
func (s *Session) SetPersonalInfo(info resume.PersonalInfo) State {
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.WithPersonalInfo(doc, info)
	})
}

// SetTemplate selects the presentation variant
func (s *Session) SetTemplate(tmpl resume.Template) State {
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.WithTemplate(doc, tmpl)
	})
}

// AddExperience appends entry under a fresh id and returns that id
func (s *Session) AddExperience(entry resume.ExperienceEntry) (string, State) {
	entry.ID = s.newID()
	return entry.ID, s.Apply(func(doc resume.Document) resume.Document {
		return resume.AddExperience(doc, entry)
	})
}

// UpdateExperience replaces the entry with id by fn(entry)
func (s *Session) UpdateExperience(id string, fn func(resume.ExperienceEntry) resume.ExperienceEntry) State {
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.UpdateExperience(doc, id, fn)
	})
}

// RemoveExperience drops the entry with id
func (s *Session) RemoveExperience(id string) State {
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.RemoveExperience(doc, id)
	})
}

// AddEducation appends entry under a fresh id and returns that id
func (s *Session) AddEducation(entry resume.EducationEntry) (string, State) {
	entry.ID = s.newID()
	return entry.ID, s.Apply(func(doc resume.Document) resume.Document {
		return resume.AddEducation(doc, entry)
	})
}

// UpdateEducation replaces the entry with id by fn(entry)
func (s *Session) UpdateEducation(id string, fn func(resume.EducationEntry) resume.EducationEntry) State {
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.UpdateEducation(doc, id, fn)
	})
}

// RemoveEducation drops the entry with id
func (s *Session) RemoveEducation(id string) State {
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.RemoveEducation(doc, id)
	})
}

// AddSkill appends a skill. The name is trimmed and a blank name leaves the
// document untouched; an empty level means intermediate. The boolean
// reports whether a skill was added.
func (s *Session) AddSkill(name string, level resume.SkillLevel) (State, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.State(), false
	}
	if level == "" {
		level = resume.LevelIntermediate
	}
	skill := resume.SkillEntry{Name: name, Level: level}
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.AppendSkill(doc, skill)
	}), true
}

// RemoveSkill drops the skill at index
func (s *Session) RemoveSkill(index int) State {
	return s.Apply(func(doc resume.Document) resume.Document {
		return resume.RemoveSkill(doc, index)
	})
}

// Flush waits for queued writes to reach the store
func (s *Session) Flush(ctx context.Context) error {
	return s.mirror.Flush(ctx)
}

// Close writes the last pending change and stops the mirror
func (s *Session) Close(ctx context.Context) error {
	return s.mirror.Close(ctx)
}
