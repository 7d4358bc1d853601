package server

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/config"
	"resumebuilder/internal/editor"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/formatters"
	"resumebuilder/internal/observability"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Enhancement is the stateless side of the enhancement client, used by
// POST /enhance and the health check
type Enhancement interface {
	Enhance(ctx context.Context, req ai.Request) ai.Result[ai.Response]
	ProviderName() string
	ModelInfo(ctx context.Context) *ai.ModelInfo
	Stats() map[string]any
}

// Server serves one editing session over HTTP
type Server struct {
	Host    string
	Port    string
	Version string

	TLS config.TLSConfig

	// API Authentication
	APIKeys map[string]bool

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxRequestSize int64

	RateLimit   config.RateLimitConfig
	RateLimiter *RateLimiter

	CORS config.CORSConfig

	session    *editor.Session
	enhancer   Enhancement
	formatters *formatters.FormatterRegistry
	validate   *validator.Validate
	obs        *observability.Manager
	started    time.Time

	Logger *appErrors.Logger
}

// Options holds what a Server is built from
type Options struct {
	Config         config.ServerConfig
	MaxRequestSize int64
	Version        string
	Session        *editor.Session
	Enhancer       Enhancement
	Observability  *observability.Manager
	Logger         *appErrors.Logger
}

// NewServer creates a new Server instance
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = appErrors.Discard()
	}
	cfg := opts.Config

	apiKeyMap := make(map[string]bool)
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeyMap[key] = true
		}
	}

	var rateLimiter *RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstCapacity, logger)
	}

	return &Server{
		Host:           cfg.Host,
		Port:           cfg.Port,
		Version:        opts.Version,
		TLS:            cfg.TLS,
		APIKeys:        apiKeyMap,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxRequestSize: opts.MaxRequestSize,
		RateLimit:      cfg.RateLimit,
		RateLimiter:    rateLimiter,
		CORS:           cfg.CORS,
		session:        opts.Session,
		enhancer:       opts.Enhancer,
		formatters:     formatters.NewFormatterRegistry(),
		validate:       validator.New(),
		obs:            opts.Observability,
		started:        time.Now(),
		Logger:         logger,
	}
}
