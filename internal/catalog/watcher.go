package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads file-backed catalog sources when they change on disk.
// Events are debounced because editors and exporters write in bursts.
type Watcher struct {
	fw       *fsnotify.Watcher
	areas    map[string]string // path -> area
	onChange func(area string)
	logger   *slog.Logger
	debounce time.Duration
}

// NewWatcher watches the given path->area mapping and calls onChange with the
// affected area after a change settles. Returns nil with no error when there
// are no file-backed sources to watch.
func NewWatcher(areasByPath map[string]string, onChange func(area string), logger *slog.Logger) (*Watcher, error) {
	if len(areasByPath) == 0 {
		return nil, nil
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for path := range areasByPath {
		if err := fw.Add(path); err != nil {
			logger.Warn("cannot watch catalog source", "path", path, "error", err)
		}
	}

	return &Watcher{
		fw:       fw,
		areas:    areasByPath,
		onChange: onChange,
		logger:   logger,
		debounce: 500 * time.Millisecond,
	}, nil
}

// Run processes filesystem events until the context is cancelled.
// Call in a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			area, watched := w.areas[event.Name]
			if !watched {
				continue
			}
			pending[area] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			for area := range pending {
				w.logger.Info("catalog source changed, reloading", "area", area)
				w.onChange(area)
			}
			clear(pending)
			timerC = nil

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("catalog watcher error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
