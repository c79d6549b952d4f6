package settings

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/odvcencio/wndkit/pkg/clock"
	"github.com/odvcencio/wndkit/pkg/errors"
	"github.com/odvcencio/wndkit/pkg/logging"
)

// DefaultQuietPeriod is how long the settings file must go without
// events before Watch reloads it. Saving usually truncates the file
// before writing it.
const DefaultQuietPeriod = 100 * time.Millisecond

// SetQuietPeriod sets the clock and quiet period Watch uses to coalesce
// file events. Call it before Watch.
func (s *Store) SetQuietPeriod(clk clock.Clock, quiet time.Duration) {
	if clk != nil {
		s.clock = clk
	}
	if quiet > 0 {
		s.quiet = quiet
	}
}

// debouncer reports a burst of events once it has been quiet long
// enough.
type debouncer struct {
	quiet   time.Duration
	last    time.Time
	pending bool
}

func (d *debouncer) touch(now time.Time) {
	d.last = now
	d.pending = true
}

func (d *debouncer) due(now time.Time) bool {
	if !d.pending || now.Sub(d.last) < d.quiet {
		return false
	}
	d.pending = false
	return true
}

// Watch reloads the store whenever its file changes and calls onChange
// after each successful reload. Events are coalesced until the file has
// been quiet for the store's quiet period. It blocks until ctx is done.
// The parent directory is watched so editors that replace the file are
// handled.
func (s *Store) Watch(ctx context.Context, log *logging.Logger, onChange func()) error {
	if s.path == "" {
		<-ctx.Done()
		return nil
	}
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithCategory(logging.CategorySettings)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "creating settings watcher")
	}
	defer w.Close()

	dir := filepath.Dir(s.path)
	if err := w.Add(dir); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigLoad, "watching settings").WithContext("dir", dir)
	}
	target := filepath.Clean(s.path)

	db := &debouncer{quiet: s.quiet}
	tick := s.clock.NewTicker(max(s.quiet/2, time.Millisecond))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			db.touch(s.clock.Now())
		case <-tick.C:
			if !db.due(s.clock.Now()) {
				continue
			}
			if err := s.Reload(); err != nil {
				log.Warn("settings reload failed", "path", s.path, "error", err)
				continue
			}
			log.Info("settings reloaded", "path", s.path)
			if onChange != nil {
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("settings watcher error", "error", err)
		}
	}
}
