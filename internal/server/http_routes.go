package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Handler builds the router with every route and middleware layer
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestSizeLimitMiddleware)

	r.Get("/health", s.healthHandler)
	r.Get("/stats", s.statsHandler)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Get("/document", s.getDocumentHandler)
		r.Put("/document", s.importDocumentHandler)
		r.Delete("/document", s.resetDocumentHandler)
		r.Put("/document/personal-info", s.personalInfoHandler)
		r.Put("/document/template", s.templateHandler)

		r.Post("/document/experiences", s.addExperienceHandler)
		r.Patch("/document/experiences/{id}", s.updateExperienceHandler)
		r.Delete("/document/experiences/{id}", s.removeExperienceHandler)

		r.Post("/document/education", s.addEducationHandler)
		r.Patch("/document/education/{id}", s.updateEducationHandler)
		r.Delete("/document/education/{id}", s.removeEducationHandler)

		r.Post("/document/skills", s.addSkillHandler)
		r.Delete("/document/skills/{index}", s.removeSkillHandler)

		r.Get("/score", s.scoreHandler)
		r.Get("/preview", s.previewHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Post("/enhance", s.enhanceHandler)
			r.Post("/enhance/summary", s.enhanceSummaryHandler)
			r.Post("/enhance/experiences/{id}", s.enhanceExperienceHandler)
		})
	})

	var handler http.Handler = r
	handler = s.obs.HTTPMiddleware()(handler)

	// CORS wraps everything so pre-flight requests skip authentication
	if len(s.CORS.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: s.CORS.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		}).Handler(handler)
	}
	return handler
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip authentication if no API keys are configured
		if len(s.APIKeys) == 0 {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := requestAPIKey(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.APIKeys[apiKey] {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"client_ip", r.RemoteAddr,
			"api_key_prefix", maskAPIKey(apiKey))

		next.ServeHTTP(w, r)
	})
}

// requestAPIKey reads X-API-Key, falling back to a Bearer token
func requestAPIKey(r *http.Request) string {
	if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
		return apiKey
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return after
	}
	return ""
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.MaxRequestSize > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
		}
		next.ServeHTTP(w, r)
	})
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
