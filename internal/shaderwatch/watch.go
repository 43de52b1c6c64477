// Package shaderwatch reports edits to shader sources so the frame loop can
// recompile them. The watcher goroutine never touches GL; it only queues
// paths which the render thread drains once per frame.
package shaderwatch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const queueSize = 16

// Extensions lists the shader file suffixes that trigger a reload.
var Extensions = []string{".vs", ".fs"}

// Watcher queues changed shader paths from a directory.
type Watcher struct {
	log     zerolog.Logger
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
	stopped chan struct{}
}

// New starts watching dir. Watching the directory also catches editors that
// save by renaming a temporary file over the shader.
func New(log zerolog.Logger, dir string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		log:     log,
		watcher: fw,
		changed: make(chan string, queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !IsShader(event.Name) {
				continue
			}
			select {
			case w.changed <- filepath.Clean(event.Name):
			default:
				// Queue full.
				w.log.Debug().Str("path", event.Name).Msg("shader change dropped")
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("shader watcher error")
		}
	}
}

// IsShader reports whether path has a shader extension.
func IsShader(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Drain returns the distinct paths queued since the last call without
// blocking.
func (w *Watcher) Drain() []string {
	var paths []string
	seen := map[string]bool{}
	for {
		select {
		case p := <-w.changed:
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		default:
			return paths
		}
	}
}

// Close stops the goroutine and releases the OS watch.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	<-w.stopped
	return err
}
