package manifest

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce delays regeneration until editor writes settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher regenerates a manifest whenever the file changes.
type Watcher struct {
	Path     string
	Debounce time.Duration

	// OnChange runs after each debounced change. Required. Calls never
	// overlap and none runs after Run returns.
	OnChange func()
}

// Run watches the manifest's directory until ctx is done. The directory is
// watched rather than the file so editors that replace the file are seen.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}

	// fire is nil while no change is pending.
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	name := filepath.Base(w.Path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-fire:
			fire = nil
			w.OnChange()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(delay)
			} else {
				timer.Reset(delay)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("manifest", w.Path).Msg("manifest watcher error")
		}
	}
}
