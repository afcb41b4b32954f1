package watcher

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"stickies/internal/domain"
	"stickies/internal/logging"
)

// DefaultDebounce is how long a path must stay quiet before its change is reported
const DefaultDebounce = 150 * time.Millisecond

// Notes resolves and loads notes for the watcher
type Notes interface {
	FolderPath() string
	RelPath(abs string) (string, bool)
	LoadNote(ctx context.Context, rel string) (domain.Item, error)
}

// pending accumulates the events of one path until it goes quiet
type pending struct {
	ops     fsnotify.Op
	oldPath string // Set when a Create was paired with an earlier Rename
	last    time.Time
}

type renameRecord struct {
	path string
	at   time.Time
}

// Watcher turns filesystem events in the notes folder into item-set changes
type Watcher struct {
	watcher  *fsnotify.Watcher
	notes    Notes
	debounce time.Duration
	changes  chan domain.Change
	done     chan struct{}
	stopped  chan struct{}
	log      *zap.Logger
}

// New starts watching the notes folder, creating it if needed
func New(notes Notes, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if err := os.MkdirAll(notes.FolderPath(), 0755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(notes.FolderPath()); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		notes:    notes,
		debounce: debounce,
		changes:  make(chan domain.Change, 16),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		log:      logging.Named("watcher"),
	}

	go w.run()
	w.log.Debug("watching notes folder", zap.String("path", notes.FolderPath()))
	return w, nil
}

// Changes returns the channel of debounced changes. It is closed by Close.
func (w *Watcher) Changes() <-chan domain.Change {
	return w.changes
}

// Close stops the watcher
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	err := w.watcher.Close()
	<-w.stopped
	return err
}

// run processes filesystem events with debouncing
func (w *Watcher) run() {
	defer close(w.stopped)
	defer close(w.changes)

	byPath := make(map[string]*pending)
	var renames []renameRecord

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			rel, ok := w.notes.RelPath(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			w.log.Debug("fsnotify event", zap.String("op", event.Op.String()), zap.String("path", rel))

			p := byPath[rel]
			if p == nil {
				p = &pending{}
				byPath[rel] = p
			}
			p.ops |= event.Op
			p.last = now

			switch {
			case event.Has(fsnotify.Rename):
				renames = append(renames, renameRecord{path: rel, at: now})
			case event.Has(fsnotify.Create) && len(renames) > 0:
				// fsnotify reports a move as Rename on the old name then Create on the new one.
				old := renames[0]
				renames = renames[1:]
				if old.path != rel {
					p.oldPath = old.path
					delete(byPath, old.path)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("fsnotify error", zap.Error(err))

		case now := <-ticker.C:
			for len(renames) > 0 && now.Sub(renames[0].at) >= w.debounce {
				renames = renames[1:]
			}
			for rel, p := range byPath {
				if now.Sub(p.last) < w.debounce {
					continue
				}
				delete(byPath, rel)
				ch, ok := w.resolve(rel, p)
				if !ok {
					continue
				}
				select {
				case w.changes <- ch:
				case <-w.done:
					return
				}
			}
		}
	}
}

// resolve decides the change kind from the accumulated events and the file's current state
func (w *Watcher) resolve(rel string, p *pending) (domain.Change, bool) {
	item, err := w.notes.LoadNote(context.Background(), rel)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			w.log.Warn("failed to load changed note", zap.String("path", rel), zap.Error(err))
			return domain.Change{}, false
		}
		return domain.Change{Kind: domain.ChangeDeleted, Path: rel}, true
	}

	switch {
	case p.oldPath != "":
		return domain.Change{Kind: domain.ChangeRenamed, Path: rel, OldPath: p.oldPath, Item: item}, true
	case p.ops.Has(fsnotify.Create):
		return domain.Change{Kind: domain.ChangeCreated, Path: rel, Item: item}, true
	default:
		return domain.Change{Kind: domain.ChangeModified, Path: rel, Item: item}, true
	}
}
