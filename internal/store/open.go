package store

import (
	"context"
	"fmt"

	"resumebuilder/internal/config"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/observability"
)

// Open builds the document store selected by cfg. The returned close
// function releases the backing slot.
func Open(ctx context.Context, cfg config.StoreConfig, logger *appErrors.Logger, metrics *observability.Metrics) (*DocumentStore, func(), error) {
	if logger == nil {
		logger = appErrors.Discard()
	}
	var slot Slot
	closeFn := func() {}

	switch cfg.Driver {
	case config.StoreDriverFile:
		fileSlot, err := NewFileSlot(cfg.Dir)
		if err != nil {
			return nil, nil, appErrors.NewStorageError(appErrors.ErrCodeStoreReadFailed, "failed to open file store", err)
		}
		slot = fileSlot
	case config.StoreDriverPostgres:
		pgSlot, err := ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, appErrors.NewStorageError(appErrors.ErrCodeStoreReadFailed, "failed to open postgres store", err)
		}
		slot = pgSlot
		closeFn = pgSlot.Close
	default:
		return nil, nil, fmt.Errorf("unknown store driver: %s", cfg.Driver)
	}

	logger.Debug("Opened document store", "driver", cfg.Driver, "key", cfg.Key)
	return NewDocumentStore(slot, WithKey(cfg.Key), WithLogger(logger), WithMetrics(metrics)), closeFn, nil
}
