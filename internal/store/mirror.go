package store

import (
	"context"
	"sync"
	"time"

	appErrors "resumebuilder/internal/errors"
	"resumebuilder/internal/resume"
)

const defaultWriteTimeout = 10 * time.Second

// write is the latest pending request. A nil doc clears the slot.
type write struct {
	doc *resume.Document
}

// Mirror writes documents through to a DocumentStore in the background.
// Submit never blocks; when writes arrive faster than the slot accepts
// them only the latest one is kept. Failures are logged and dropped.
type Mirror struct {
	store        *DocumentStore
	logger       *appErrors.Logger
	writeTimeout time.Duration

	mu      sync.Mutex
	pending *write
	closed  bool

	wake    chan struct{}
	flush   chan chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewMirror starts the background writer for store
func NewMirror(store *DocumentStore, logger *appErrors.Logger) *Mirror {
	if logger == nil {
		logger = appErrors.Discard()
	}
	m := &Mirror{
		store:        store,
		logger:       logger,
		writeTimeout: defaultWriteTimeout,
		wake:         make(chan struct{}, 1),
		flush:        make(chan chan struct{}),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
	go m.run()
	return m
}

// Submit queues doc for writing
func (m *Mirror) Submit(doc resume.Document) {
	snapshot := doc.Clone()
	m.enqueue(&write{doc: &snapshot})
}

// Clear queues removal of the stored document
func (m *Mirror) Clear() {
	m.enqueue(&write{})
}

func (m *Mirror) enqueue(w *write) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.logger.Debug("Mirror closed, dropping write", "key", m.store.Key())
		return
	}
	m.pending = w
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Mirror) run() {
	defer close(m.stopped)
	for {
		select {
		case <-m.wake:
			m.drain()
		case reply := <-m.flush:
			m.drain()
			close(reply)
		case <-m.done:
			m.drain()
			return
		}
	}
}

func (m *Mirror) drain() {
	for {
		m.mu.Lock()
		w := m.pending
		m.pending = nil
		m.mu.Unlock()
		if w == nil {
			return
		}
		m.apply(w)
	}
}

func (m *Mirror) apply(w *write) {
	ctx, cancel := context.WithTimeout(context.Background(), m.writeTimeout)
	defer cancel()

	var err error
	if w.doc == nil {
		err = m.store.Clear(ctx)
	} else {
		err = m.store.Save(ctx, *w.doc)
	}
	if err != nil {
		m.logger.LogError(err, "Write-through to store failed", "key", m.store.Key())
	}
}

// Flush waits until every write submitted before the call has been applied
func (m *Mirror) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case m.flush <- reply:
	case <-m.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close applies the last pending write and stops the writer
func (m *Mirror) Close(ctx context.Context) error {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.done)
	})

	select {
	case <-m.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
