package panzoom

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Manifest lists the assets to load, in load order.
//
//	assets:
//	  - id: rect1
//	    url: images/rect1.svg
type Manifest struct {
	Assets []AssetRef `yaml:"assets"`
}

// ParseManifest decodes manifest YAML. Every entry needs an id and a url.
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("panzoom: parse manifest: %w", err)
	}
	for i, ref := range m.Assets {
		if ref.ID == "" || ref.URL == "" {
			return Manifest{}, fmt.Errorf("panzoom: manifest entry %d needs both id and url", i)
		}
	}
	return m, nil
}

// LoadManifest reads and parses a manifest file from fsys.
func LoadManifest(fsys fs.FS, name string) (Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Manifest{}, fmt.Errorf("panzoom: load manifest %s: %w", name, err)
	}
	return ParseManifest(data)
}

// ManifestWatcher reports changes to image and manifest files under the
// watched directories. Events carries changed paths; drain it from the game
// loop and reload there, so all atlas mutation stays on one goroutine.
type ManifestWatcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewManifestWatcher starts watching dirs.
func NewManifestWatcher(dirs ...string) (*ManifestWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("panzoom: watch: %w", err)
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("panzoom: watch %s: %w", dir, err)
		}
	}

	mw := &ManifestWatcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go mw.run()
	return mw, nil
}

// Close stops the watcher and closes its channels.
func (w *ManifestWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// Changed drains pending events without blocking and reports whether any
// watched file changed.
func (w *ManifestWatcher) Changed() bool {
	changed := false
	for {
		select {
		case _, ok := <-w.Events:
			if !ok {
				return changed
			}
			changed = true
		default:
			return changed
		}
	}
}

func (w *ManifestWatcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !isWatchedFile(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < 100*time.Millisecond {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// isWatchedFile reports whether a change to path should trigger a reload.
func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml",
		".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp", ".svg":
		return true
	}
	return false
}
