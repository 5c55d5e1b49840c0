package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher queues snapshot files appearing in a directory.
type Watcher struct {
	dir     string
	pattern *regexp.Regexp
	queue   chan string
	logger  *zap.Logger
	onDrop  func(path string)
	onQueue func(depth int)
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDropHook registers fn to be called for every notification dropped on a full queue.
func WithDropHook(fn func(path string)) Option {
	return func(w *Watcher) {
		w.onDrop = fn
	}
}

// WithQueueHook registers fn to be called with the queue depth after every queued path.
func WithQueueHook(fn func(depth int)) Option {
	return func(w *Watcher) {
		w.onQueue = fn
	}
}

// New creates a watcher for cfg.Dir. The directory is not opened until Run.
func New(cfg Config, logger *zap.Logger, opts ...Option) (*Watcher, error) {
	pattern, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid watcher pattern %q: %w", cfg.Pattern, err)
	}
	size := cfg.QueueSize
	if size < 1 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &Watcher{
		dir:     cfg.Dir,
		pattern: pattern,
		queue:   make(chan string, size),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Queue returns the channel of snapshot paths. It is closed when Run returns.
func (w *Watcher) Queue() <-chan string {
	return w.queue
}

// Len returns the number of queued paths.
func (w *Watcher) Len() int {
	return len(w.queue)
}

// Matches reports whether the base name of path matches the snapshot pattern.
func (w *Watcher) Matches(path string) bool {
	return w.pattern.MatchString(filepath.Base(path))
}

// Offer queues path if it matches the pattern. It never blocks and reports
// whether the path was queued.
func (w *Watcher) Offer(path string) bool {
	if !w.Matches(path) {
		return false
	}
	select {
	case w.queue <- path:
		if w.onQueue != nil {
			w.onQueue(len(w.queue))
		}
		return true
	default:
		w.logger.Warn("Snapshot queue full, dropping notification",
			zap.String("path", path),
			zap.Int("queue_size", cap(w.queue)),
		)
		if w.onDrop != nil {
			w.onDrop(path)
		}
		return false
	}
}

// Run watches the directory until ctx is cancelled or the underlying watcher fails.
// The queue is closed on return so consumers can range over it.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.queue)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.logger.Info("Watching for snapshots", zap.String("dir", w.dir), zap.String("pattern", w.pattern.String()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// Snapshots are renamed into place, which arrives as Create. Write
			// events would re-queue a file once per partial write.
			if !event.Has(fsnotify.Create) {
				continue
			}
			if w.Offer(event.Name) {
				w.logger.Debug("Queued snapshot", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}
