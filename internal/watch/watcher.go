// Package watch reports newly delivered log files in a local
// directory. CloudFront drops each log object as a file; the watcher
// waits for a file to settle (no writes for the debounce window)
// before reporting it, so a file is never read while it is still being
// written.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultSettleDelay is how long a file must stay unmodified before it
// is reported.
const DefaultSettleDelay = 500 * time.Millisecond

// Watcher monitors one directory for new log files.
type Watcher struct {
	dir    string
	settle time.Duration
	logger zerolog.Logger
}

// New creates a watcher over dir. settle <= 0 selects
// DefaultSettleDelay.
func New(dir string, settle time.Duration, logger zerolog.Logger) *Watcher {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &Watcher{dir: dir, settle: settle, logger: logger}
}

// Run watches the directory until ctx is done, sending the path of
// each newly settled log file to out exactly once. Files already in
// the directory when Run starts are not reported.
func (w *Watcher) Run(ctx context.Context, out chan<- string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.logger.Info().Str("dir", w.dir).Msg("watching for new log files")

	// pending maps a path to the time of its last write; reported
	// remembers paths already sent.
	pending := make(map[string]time.Time)
	reported := make(map[string]bool)

	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isLogFile(event.Name) || reported[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			pending[event.Name] = time.Now()

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				reported[path] = true
				w.logger.Debug().Str("path", path).Msg("log file settled")
				select {
				case out <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().Err(err).Msg("watcher error")
		}
	}
}

// isLogFile reports whether the path looks like a CloudFront log
// delivery.
func isLogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".log":
		return true
	}
	return false
}
