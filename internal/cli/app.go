package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"resumebuilder/internal/ai"
	"resumebuilder/internal/common"
	"resumebuilder/internal/config"
	"resumebuilder/internal/editor"
	"resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
	"resumebuilder/internal/store"
)

const closeTimeout = 10 * time.Second

// prepareOutput applies the fallback format and checks it against the
// configured formats
func prepareOutput(cmd *cobra.Command, cmdConfig *common.CommandConfig, fallback string) error {
	cfg := getConfigFromContext(cmd.Context())
	if cmdConfig.OutputFormat == "" {
		cmdConfig.OutputFormat = fallback
		if fallback == "" {
			cmdConfig.OutputFormat = cfg.App.DefaultFormat
		}
	}
	return cmdConfig.CheckFormat(cfg.App.SupportedFormats)
}

func newOutputHandler(cmd *cobra.Command) *common.OutputHandler {
	return common.NewOutputHandlerTo(cmd.OutOrStdout(), getLoggerFromContext(cmd.Context()))
}

// storedDocument loads the persisted document, opening and closing the
// configured store around the read
func storedDocument(cfg *config.Config, logger *errors.Logger) common.DocumentLoader {
	return func(ctx context.Context) (resume.Document, error) {
		st, closeStore, err := store.Open(ctx, cfg.Store, logger, nil)
		if err != nil {
			return resume.Document{}, err
		}
		defer closeStore()
		return st.Load(ctx), nil
	}
}

// openSession starts an editing session over the configured store. The
// returned function flushes pending writes and releases the store.
func openSession(ctx context.Context, cfg *config.Config, logger *errors.Logger, enhancer ai.Enhancer) (*editor.Session, func(), error) {
	st, closeStore, err := store.Open(ctx, cfg.Store, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	session := editor.NewSession(ctx, st, enhancer, logger)
	return session, func() {
		closeSession(session, logger)
		closeStore()
	}, nil
}

// seededSession starts a session over an in-memory slot holding doc, so
// file input never touches the persisted document
func seededSession(ctx context.Context, doc resume.Document, logger *errors.Logger, enhancer ai.Enhancer) (*editor.Session, func(), error) {
	st := store.NewDocumentStore(store.NewMemorySlot(), store.WithLogger(logger))
	if err := st.Save(ctx, doc); err != nil {
		return nil, nil, err
	}
	session := editor.NewSession(ctx, st, enhancer, logger)
	return session, func() { closeSession(session, logger) }, nil
}

func closeSession(session *editor.Session, logger *errors.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := session.Close(ctx); err != nil {
		logger.LogError(err, "Failed to persist pending changes")
	}
}
