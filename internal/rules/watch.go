package rules

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a rules directory tree and triggers a callback on change.
type FileWatcher struct {
	Root     string
	onChange func(string) // called with path that changed
	onError  func(error)
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// NewFileWatcher creates a watcher for every directory under root.
func NewFileWatcher(root string, onChange func(string), onError func(error)) *FileWatcher {
	return &FileWatcher{
		Root:     root,
		onChange: onChange,
		onError:  onError,
		done:     make(chan struct{}),
	}
}

// Start registers the directories and begins delivering events in a goroutine.
func (w *FileWatcher) Start() error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// fsnotify is not recursive; register each directory
	err = filepath.WalkDir(w.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return err
	}
	w.watcher = fw

	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fw.Events:
				if !ok {
					return
				}
				w.handle(ev)
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				if w.onError != nil {
					w.onError(err)
				}
			}
		}
	}()
	return nil
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.watcher.Add(ev.Name)
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if w.onChange != nil {
		w.onChange(ev.Name)
	}
}

// Stop terminates the watcher and waits for the event loop to exit.
func (w *FileWatcher) Stop() error {
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	<-w.done
	return err
}

// WatchLoader invalidates l whenever a file under root changes.
func WatchLoader(l *Loader, root string, onError func(error)) (*FileWatcher, error) {
	w := NewFileWatcher(root, func(string) { l.Invalidate() }, onError)
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w, nil
}
