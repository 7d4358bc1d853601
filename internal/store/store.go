// Package store persists the résumé document under a single fixed key.
package store

import (
	"context"
	"errors"

	"resumebuilder/internal/config"
	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/observability"
	"resumebuilder/internal/resume"
)

// ErrNotFound is returned by a Slot when nothing is stored under the key
var ErrNotFound = errors.New("slot not found")

// Slot is a durable key-value slot holding serialized bytes
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// DocumentStore reads and writes the document under one fixed key
type DocumentStore struct {
	slot    Slot
	key     string
	logger  *appErrors.Logger
	metrics *observability.Metrics
}

// Option configures a DocumentStore
type Option func(*DocumentStore)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(s *DocumentStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed failures
func WithLogger(logger *appErrors.Logger) Option {
	return func(s *DocumentStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics counts failed reads and writes
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *DocumentStore) { s.metrics = metrics }
}

// NewDocumentStore wraps slot
func NewDocumentStore(slot Slot, opts ...Option) *DocumentStore {
	s := &DocumentStore{
		slot:   slot,
		key:    config.DefaultStoreKey,
		logger: appErrors.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key
func (s *DocumentStore) Key() string {
	return s.key
}

// Load restores the stored document. An absent slot, a read failure or a
// corrupt record all yield the empty default document.
func (s *DocumentStore) Load(ctx context.Context) resume.Document {
	data, err := s.slot.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.metrics.RecordStoreFailure(ctx, "get")
			s.logger.LogError(appErrors.NewStorageError(appErrors.ErrCodeStoreReadFailed,
				"failed to read stored document", err), "Falling back to empty document", "key", s.key)
		} else {
			s.logger.Debug("No stored document, starting empty", "key", s.key)
		}
		return resume.NewDocument()
	}

	doc, err := resume.Decode(data)
	if err != nil {
		s.metrics.RecordStoreFailure(ctx, "decode")
		s.logger.Warn("Discarding corrupt stored document", "key", s.key, "error", err.Error())
		return resume.NewDocument()
	}
	return doc
}

// Save writes doc through to the slot
func (s *DocumentStore) Save(ctx context.Context, doc resume.Document) error {
	data, err := resume.Encode(doc)
	if err != nil {
		return appErrors.NewStorageError(appErrors.ErrCodeStoreWriteFailed, "failed to encode document", err)
	}
	if err := s.slot.Put(ctx, s.key, data); err != nil {
		s.metrics.RecordStoreFailure(ctx, "put")
		return appErrors.NewStorageError(appErrors.ErrCodeStoreWriteFailed, "failed to write document", err).
			WithContext("key", s.key)
	}
	return nil
}

// Clear removes the stored document. Clearing an empty slot is not an error.
func (s *DocumentStore) Clear(ctx context.Context) error {
	if err := s.slot.Delete(ctx, s.key); err != nil && !errors.Is(err, ErrNotFound) {
		s.metrics.RecordStoreFailure(ctx, "delete")
		return appErrors.NewStorageError(appErrors.ErrCodeStoreWriteFailed, "failed to clear document", err).
			WithContext("key", s.key)
	}
	return nil
}
