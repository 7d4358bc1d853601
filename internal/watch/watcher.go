// Package watch reports debounced changes to a fixed set of files.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	appErrors "resumebuilder/internal/errors"
)

const defaultDebounce = 200 * time.Millisecond

type fileState struct {
	modTime time.Time
	size    int64
}

// FileWatcher calls onChange once per burst of writes to any of its files.
// Directories are watched too, so atomic replace-by-rename is detected.
type FileWatcher struct {
	mu sync.Mutex

	files     []string
	lastState map[string]fileState

	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	timer     *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}
	stopped    chan struct{}

	onChange func()
	logger   *appErrors.Logger
	running  bool
}

// New creates a watcher for files. A zero debounce uses the default.
func New(files []string, debounce time.Duration, onChange func(), logger *appErrors.Logger) *FileWatcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	if logger == nil {
		logger = appErrors.Discard()
	}
	abs := make([]string, 0, len(files))
	for _, file := range files {
		if file == "" {
			continue
		}
		if p, err := filepath.Abs(file); err == nil {
			file = p
		}
		abs = append(abs, file)
	}
	return &FileWatcher{
		files:      abs,
		lastState:  make(map[string]fileState),
		debounce:   debounce,
		stopChan:   make(chan struct{}),
		reloadChan: make(chan struct{}, 1),
		stopped:    make(chan struct{}),
		onChange:   onChange,
		logger:     logger,
	}
}

// Start begins watching
func (w *FileWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("file watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	w.fsWatcher = watcher

	for _, file := range w.files {
		w.lastState[file], _ = stat(file)
		dir := filepath.Dir(file)
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	w.running = true
	go w.loop()

	w.logger.Info("File watcher started",
		"files", w.files,
		"debounce_delay", w.debounce)
	return nil
}

// Stop stops watching. It is safe to call more than once.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopChan)
	if w.timer != nil {
		w.timer.Stop()
	}
	err := w.fsWatcher.Close()
	w.mu.Unlock()

	<-w.stopped
	if err != nil {
		w.logger.LogError(err, "Failed to close file system watcher")
		return err
	}
	w.logger.Info("File watcher stopped")
	return nil
}

// Files returns the absolute paths being watched
func (w *FileWatcher) Files() []string {
	return slices.Clone(w.files)
}

func (w *FileWatcher) loop() {
	defer close(w.stopped)
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.schedule()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.LogError(err, "File watcher error")

		case <-w.reloadChan:
			if w.anyChanged() {
				w.logger.Debug("Watched files changed")
				w.onChange()
			}

		case <-w.stopChan:
			return
		}
	}
}

func (w *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(event.Name)
	return slices.Contains(w.files, name)
}

func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}

func (w *FileWatcher) anyChanged() bool {
	changed := false
	for _, file := range w.files {
		current, ok := stat(file)
		if !ok {
			continue
		}
		if current != w.lastState[file] {
			w.lastState[file] = current
			changed = true
		}
	}
	return changed
}

func stat(file string) (fileState, bool) {
	info, err := os.Stat(file)
	if err != nil {
		return fileState{}, false
	}
	return fileState{modTime: info.ModTime(), size: info.Size()}, true
}
