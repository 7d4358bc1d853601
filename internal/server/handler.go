package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"resumebuilder/internal/ats"
	"resumebuilder/internal/editor"
	"resumebuilder/internal/formatters"
	"resumebuilder/internal/render"
	"resumebuilder/internal/resume"
)

type templateRequest struct {
	Template string `json:"template" validate:"required,oneof=modern classic minimal"`
}

type experienceRequest struct {
	Company      string   `json:"company"`
	Position     string   `json:"position"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
}

// experiencePatch updates only the fields present in the request
type experiencePatch struct {
	Company      *string   `json:"company"`
	Position     *string   `json:"position"`
	StartDate    *string   `json:"startDate"`
	EndDate      *string   `json:"endDate"`
	Current      *bool     `json:"current"`
	Description  *string   `json:"description"`
	Achievements *[]string `json:"achievements"`
}

type educationRequest struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	GPA         string `json:"gpa"`
}

type educationPatch struct {
	Institution *string `json:"institution"`
	Degree      *string `json:"degree"`
	Field       *string `json:"field"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	GPA         *string `json:"gpa"`
}

type skillRequest struct {
	Name  string `json:"name" validate:"max=200"`
	Level string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced expert"`
}

// mutationResponse is returned by every mutating endpoint
type mutationResponse struct {
	ID    string `json:"id,omitempty"`
	Added *bool  `json:"added,omitempty"`
	editor.State
}

// scoreResponse is the score with its band
type scoreResponse struct {
	Overall     int              `json:"overall"`
	Band        string           `json:"band"`
	Label       string           `json:"label"`
	Tone        ats.Tone         `json:"tone"`
	Message     string           `json:"message"`
	Suggestions []string         `json:"suggestions"`
	Breakdown   []ats.RuleResult `json:"breakdown"`
}

func newScoreResponse(result ats.Result) scoreResponse {
	band := result.Band()
	return scoreResponse{
		Overall:     result.Overall,
		Band:        strings.ReplaceAll(strings.ToLower(band.Label), " ", "_"),
		Label:       band.Label,
		Tone:        band.Tone,
		Message:     band.Message,
		Suggestions: result.Suggestions,
		Breakdown:   result.Breakdown,
	}
}

func (s *Server) getDocumentHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.State()})
}

// importDocumentHandler replaces the whole document with a schema-checked one
func (s *Server) importDocumentHandler(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := resume.Decode(body)
	if err == nil {
		err = resume.Validate(doc)
	}
	if err != nil {
		s.Logger.Info("Rejected document import", "error", err.Error())
		writeErrorResponse(w, "Invalid document", err.Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.Replace(doc)})
}

func (s *Server) resetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.Reset()})
}

func (s *Server) personalInfoHandler(w http.ResponseWriter, r *http.Request) {
	var req resume.PersonalInfo
	if !s.decodeRequest(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.SetPersonalInfo(req)})
}

func (s *Server) templateHandler(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.SetTemplate(resume.Template(req.Template))})
}

func (s *Server) addExperienceHandler(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	id, state := s.session.AddExperience(resume.ExperienceEntry{
		Company:      req.Company,
		Position:     req.Position,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Current:      req.Current,
		Description:  req.Description,
		Achievements: req.Achievements,
	})
	writeJSON(w, http.StatusCreated, mutationResponse{ID: id, State: state})
}

func (s *Server) updateExperienceHandler(w http.ResponseWriter, r *http.Request) {
	var req experiencePatch
	if !s.decodeRequest(w, r, &req) {
		return
	}
	state := s.session.UpdateExperience(chi.URLParam(r, "id"), func(e resume.ExperienceEntry) resume.ExperienceEntry {
		setIf(&e.Company, req.Company)
		setIf(&e.Position, req.Position)
		setIf(&e.StartDate, req.StartDate)
		setIf(&e.EndDate, req.EndDate)
		setIf(&e.Current, req.Current)
		setIf(&e.Description, req.Description)
		setIf(&e.Achievements, req.Achievements)
		return e
	})
	writeJSON(w, http.StatusOK, mutationResponse{State: state})
}

func (s *Server) removeExperienceHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.RemoveExperience(chi.URLParam(r, "id"))})
}

func (s *Server) addEducationHandler(w http.ResponseWriter, r *http.Request) {
	var req educationRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	id, state := s.session.AddEducation(resume.EducationEntry{
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		GPA:         req.GPA,
	})
	writeJSON(w, http.StatusCreated, mutationResponse{ID: id, State: state})
}

func (s *Server) updateEducationHandler(w http.ResponseWriter, r *http.Request) {
	var req educationPatch
	if !s.decodeRequest(w, r, &req) {
		return
	}
	state := s.session.UpdateEducation(chi.URLParam(r, "id"), func(e resume.EducationEntry) resume.EducationEntry {
		setIf(&e.Institution, req.Institution)
		setIf(&e.Degree, req.Degree)
		setIf(&e.Field, req.Field)
		setIf(&e.StartDate, req.StartDate)
		setIf(&e.EndDate, req.EndDate)
		setIf(&e.GPA, req.GPA)
		return e
	})
	writeJSON(w, http.StatusOK, mutationResponse{State: state})
}

func (s *Server) removeEducationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.RemoveEducation(chi.URLParam(r, "id"))})
}

func (s *Server) addSkillHandler(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}
	state, added := s.session.AddSkill(req.Name, resume.SkillLevel(req.Level))
	writeJSON(w, http.StatusOK, mutationResponse{Added: &added, State: state})
}

func (s *Server) removeSkillHandler(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeErrorResponse(w, "Invalid skill index", "index must be an integer", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{State: s.session.RemoveSkill(index)})
}

// scoreHandler returns the score as JSON, or rendered when format is text
// or markdown
func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	result := s.session.Score()
	format := r.URL.Query().Get("format")
	if format == "" || format == "json" {
		writeJSON(w, http.StatusOK, newScoreResponse(result))
		return
	}
	s.writeFormatted(w, result, format)
}

// previewHandler renders the document with its own template unless the
// template query parameter selects another one
func (s *Server) previewHandler(w http.ResponseWriter, r *http.Request) {
	doc := s.session.Document()
	tmpl := doc.Template
	if t := r.URL.Query().Get("template"); t != "" {
		tmpl = resume.Template(t)
	}
	view := render.RenderAs(doc, tmpl)

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	s.writeFormatted(w, view, format)
}

func (s *Server) writeFormatted(w http.ResponseWriter, data any, format string) {
	if !s.formatters.Supports(data, format) {
		writeErrorResponse(w, "Unsupported format",
			"supported formats: "+strings.Join(s.formatters.GetSupportedFormats(), ", "), http.StatusBadRequest)
		return
	}
	out, err := s.formatters.Format(data, format)
	if err != nil {
		s.Logger.LogError(err, "Failed to format response", "format", format)
		writeErrorResponse(w, "Failed to format response", err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", formatters.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
