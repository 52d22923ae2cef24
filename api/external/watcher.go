/* watcher.go
 * Contains a watcher that reloads a results file whenever it changes on disk, so a running bot follows the
 * tournament as results are entered
 */

package external

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"bracket-bot/api/shared"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	// rewatchDelay gives an editor time to move the new file into place
	rewatchDelay = 50 * time.Millisecond
)

// ReloadFunc receives the games of every successful reload. A returned error is logged and watching continues
type ReloadFunc func(path string, games []*shared.GameRecord) error

type Watcher struct {
	Path     string
	Debounce time.Duration
	reload   ReloadFunc

	mu    sync.Mutex
	timer *time.Timer
}

func NewWatcher(path string, debounce time.Duration, reload ReloadFunc) (*Watcher, error) {
	if path == "" {
		return nil, errors.New("path is required but none was provided")
	}
	if reload == nil {
		return nil, errors.New("reload callback is required but none was provided")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{Path: path, Debounce: debounce, reload: reload}, nil
}

// Watch blocks until ctx is cancelled, reloading Path after each burst of changes. Files that fail to parse are
// logged and skipped so the last good tournament stays loaded
// Preconditions: Path exists
// Postconditions: Returns nil when ctx is cancelled, or an error if the file could not be watched
func (w *Watcher) Watch(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating file watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.Path); err != nil {
		return fmt.Errorf("error watching %s: %w", w.Path, err)
	}
	log.WithField("path", w.Path).Info("watching results file")

	defer w.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			// editors that save by rename replace the inode, so the watch has to be added again
			if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(rewatchDelay):
				}
				if err := fsWatcher.Add(w.Path); err != nil {
					log.WithError(err).WithField("path", w.Path).Warn("could not re-add watch")
				}
			}
			w.schedule()

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("file watcher error")
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.Debounce, w.load)
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
}

func (w *Watcher) load() {
	games, err := LoadGames(w.Path)
	if err != nil {
		log.WithError(err).WithField("path", w.Path).Warn("results file not reloaded")
		return
	}
	if err := w.reload(w.Path, games); err != nil {
		log.WithError(err).WithField("path", w.Path).Warn("reload rejected")
	}
}
