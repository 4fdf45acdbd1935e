// Package watcher reloads the blueprint image when the file changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher watches a single file and triggers a debounced callback when
// it is rewritten. Editors often emit several write events per save; the
// debounce collapses them into one reload.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu       sync.Mutex
	path     string
	callback func(string)
	timer    *time.Timer
	done     chan struct{}
}

// New creates a file watcher with the given debounce interval.
func New(debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	fw := &FileWatcher{
		watcher:  w,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go fw.run()
	return fw, nil
}

// Watch replaces the watched file. The callback is invoked with the path
// after the file is written or recreated.
func (fw *FileWatcher) Watch(path string, callback func(string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.path != "" {
		_ = fw.watcher.Remove(fw.path)
	}
	if err := fw.watcher.Add(abs); err != nil {
		return fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	fw.path = abs
	fw.callback = callback
	return nil
}

// Close stops the watcher.
func (fw *FileWatcher) Close() error {
	close(fw.done)
	return fw.watcher.Close()
}

func (fw *FileWatcher) run() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			fw.schedule(event.Name)
		case _, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
		case <-fw.done:
			return
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a changed file.
func (fw *FileWatcher) schedule(name string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.callback == nil || fw.path == "" {
		return
	}
	path := fw.path
	callback := fw.callback

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounce, func() {
		callback(path)
	})
}
