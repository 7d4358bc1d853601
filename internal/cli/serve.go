package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/editor"
	"resumebuilder/internal/errors"
	"resumebuilder/internal/observability"
	"resumebuilder/internal/server"
	"resumebuilder/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP editor API",
	Long: `Start an HTTP server that exposes the résumé editor as a REST API.

Available endpoints:
- GET/PUT/DELETE /document: Read, import or clear the document
- PUT /document/personal-info, PUT /document/template: Edit sections
- POST/PATCH/DELETE /document/experiences, /document/education: Edit entries
- POST/DELETE /document/skills: Add or remove skills
- GET /score: ATS compatibility score
- GET /preview: Rendered document (?template=, ?format=)
- POST /enhance/summary, POST /enhance/experiences/{id}: AI enhancement
- POST /enhance: Stateless AI enhancement
- GET /health: Health check endpoint
- GET /stats: Server statistics and rate limiting info

TLS is enabled when both --cert-file and --key-file are set. Certificates
are reloaded when the files change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on (default from config)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from config)")
	serveCmd.Flags().String("cert-file", "", "Server certificate file (PEM, overrides config)")
	serveCmd.Flags().String("key-file", "", "Server private key file (PEM, overrides config)")
}

// applyServeFlags copies explicitly set flags over the loaded configuration
func applyServeFlags(cmd *cobra.Command, target map[string]*string) {
	for name, field := range target {
		if cmd.Flags().Changed(name) {
			*field, _ = cmd.Flags().GetString(name)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	applyServeFlags(cmd, map[string]*string{
		"port":      &cfg.Server.Port,
		"host":      &cfg.Server.Host,
		"cert-file": &cfg.Server.TLS.CertFile,
		"key-file":  &cfg.Server.TLS.KeyFile,
	})
	if err := cfg.Validate(); err != nil {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig, "invalid server configuration", err)
	}

	obs, err := observability.NewManager(cfg.Observability, Version, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Failed to shut down observability")
		}
	}()

	st, closeStore, err := store.Open(ctx, cfg.Store, logger, obs.Metrics())
	if err != nil {
		return err
	}
	defer closeStore()

	service, err := ai.NewService(ctx, cfg.AI, logger,
		ai.WithMetrics(obs.Metrics()),
		ai.WithTransport(obs.HTTPTransport(nil)))
	if err != nil {
		return err
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.LogError(err, "Failed to close AI service")
		}
	}()

	session := editor.NewSession(ctx, st, service, logger, editor.WithMetrics(obs.Metrics()))
	defer closeSession(session, logger)

	srv := server.NewServer(server.Options{
		Config:         cfg.Server,
		MaxRequestSize: cfg.App.MaxRequestSize,
		Version:        Version,
		Session:        session,
		Enhancer:       service,
		Observability:  obs,
		Logger:         logger,
	})
	return srv.Start(ctx)
}
