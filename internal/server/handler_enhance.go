package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/editor"
	"resumebuilder/internal/resume"
)

// enhanceRequest is the stateless request shape. Type is accepted as an
// alias of Kind.
type enhanceRequest struct {
	Type         string                  `json:"type"`
	Kind         string                  `json:"kind"`
	PersonalInfo *resume.PersonalInfo    `json:"personalInfo"`
	Experience   *resume.ExperienceEntry `json:"experience"`
}

func (r enhanceRequest) kind() ai.Kind {
	if r.Kind != "" {
		return ai.Kind(r.Kind)
	}
	return ai.Kind(r.Type)
}

// enhanceFailureResponse carries the notice the user should see
type enhanceFailureResponse struct {
	Error  string         `json:"error"`
	Kind   ai.FailureKind `json:"kind"`
	Notice ai.Notice      `json:"notice"`
}

// enhanceResponse is returned when a session enhancement succeeded
type enhanceResponse struct {
	Applied bool      `json:"applied"`
	Notice  ai.Notice `json:"notice"`
	editor.State
}

// failureStatus maps a failure kind to its HTTP status
func failureStatus(kind ai.FailureKind) int {
	switch kind {
	case ai.FailureRateLimited:
		return http.StatusTooManyRequests
	case ai.FailureQuotaExhausted:
		return http.StatusPaymentRequired
	case ai.FailureInvalidInput:
		return http.StatusUnprocessableEntity
	case ai.FailureDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeFailure(w http.ResponseWriter, failure *ai.Failure) {
	notice := failure.Notice()
	writeJSON(w, failureStatus(failure.Kind), enhanceFailureResponse{
		Error:  notice.Description,
		Kind:   failure.Kind,
		Notice: notice,
	})
}

// enhanceHandler generates content for the posted data without touching
// the session
func (s *Server) enhanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.obs.Tracer("resumebuilder.api").Start(r.Context(), "api.enhance")
	defer span.End()

	var req enhanceRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	span.SetAttributes(attribute.String("operation", string(req.kind())))

	if s.enhancer == nil {
		writeFailure(w, &ai.Failure{Kind: ai.FailureDisabled, Operation: req.kind()})
		return
	}

	result := s.enhancer.Enhance(ctx, ai.Request{
		Kind:         req.kind(),
		PersonalInfo: req.PersonalInfo,
		Experience:   req.Experience,
	})
	if !result.OK() {
		span.SetAttributes(attribute.String("failure.kind", string(result.Failure.Kind)))
		writeFailure(w, result.Failure)
		return
	}

	span.SetAttributes(attribute.Bool("success", true))
	writeJSON(w, http.StatusOK, result.Value)
}

func (s *Server) enhanceSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.obs.Tracer("resumebuilder.api").Start(r.Context(), "api.enhance_summary")
	defer span.End()

	s.writeOutcome(w, s.session.EnhanceSummary(ctx))
}

func (s *Server) enhanceExperienceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.obs.Tracer("resumebuilder.api").Start(r.Context(), "api.enhance_experience")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("experience.id", id))
	s.writeOutcome(w, s.session.EnhanceExperience(ctx, id))
}

func (s *Server) writeOutcome(w http.ResponseWriter, outcome editor.Outcome) {
	if outcome.Failure != nil {
		writeFailure(w, outcome.Failure)
		return
	}
	writeJSON(w, http.StatusOK, enhanceResponse{
		Applied: outcome.Applied,
		Notice:  outcome.Notice,
		State:   outcome.State,
	})
}
